package legacy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	legacydomain "github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/domain"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/legacyclient"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/mocks"
	"github.com/vfg2006/performance-dashboard-api/internal/config"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestFetchRawEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(&config.Config{}, mockClient)

	dateRange := domain.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	mockClient.EXPECT().
		GetRecords(legacydomain.GetRecordsParams{
			Kind:      legacydomain.RecordDealWon,
			StartDate: "2024-03-01",
			EndDate:   "2024-03-31",
		}).
		Return(legacyclient.RecordsConsultationResponse{
			Items: []legacydomain.Record{
				{
					ID:          "R1",
					LeadID:      "L100",
					Kind:        legacydomain.RecordDealWon,
					DueDate:     "2024-03-10",
					Value:       "1000.50",
					Tax:         "99.50",
					Currency:    "USD",
					OwnerID:     int64Ptr(7),
					CreatedUser: "Ana Souza",
				},
				{
					// Cancelado: regra de exclusão da própria origem
					ID:      "R2",
					LeadID:  "L101",
					Status:  legacydomain.RecordStatusCancelled,
					DueDate: "2024-03-11",
				},
				{
					// Sem data de vencimento: fora
					ID:     "R3",
					LeadID: "L102",
					Value:  "500",
				},
			},
		}, nil)

	events, err := service.FetchRawEvents(context.Background(), domain.EventAgreementSigned, dateRange)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, domain.OriginLegacy, event.SchemaOrigin)
	assert.Equal(t, "L100", event.SubjectID)
	assert.Equal(t, domain.EventAgreementSigned, event.EventKind)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), event.OccurredOn)
	assert.InDelta(t, 1000.50, event.Amount, 0.0001)
	assert.InDelta(t, 99.50, event.VATAmount, 0.0001)
	assert.Equal(t, "USD", event.CurrencyCode)
	require.NotNil(t, event.ExplicitAttributeeID)
	assert.Equal(t, int64(7), *event.ExplicitAttributeeID)

	// O adaptador reconcilia created_user -> creator
	require.NotEmpty(t, event.SubjectAttributeFields)
	assert.Equal(t, "creator", event.SubjectAttributeFields[0].Name)
	assert.Equal(t, "Ana Souza", event.SubjectAttributeFields[0].Value)
}

func TestFetchRawEventsInvoicedFieldOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(&config.Config{}, mockClient)

	mockClient.EXPECT().
		GetRecords(gomock.Any()).
		Return(legacyclient.RecordsConsultationResponse{
			Items: []legacydomain.Record{
				{
					ID:            "R9",
					LeadID:        "L200",
					DueDate:       "2024-03-05",
					Value:         "300",
					CollectorUser: "Bruno Lima",
					CreatedUser:   "Ana Souza",
				},
			},
		}, nil)

	events, err := service.FetchRawEvents(context.Background(), domain.EventPaymentInvoiced, domain.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)

	fields := events[0].SubjectAttributeFields
	require.Len(t, fields, 2)
	assert.Equal(t, "collector", fields[0].Name)
	assert.Equal(t, "creator", fields[1].Name)
}

func TestParseLegacyAmount(t *testing.T) {
	assert.Equal(t, 0.0, parseLegacyAmount(""))
	assert.Equal(t, 0.0, parseLegacyAmount("abc"))
	assert.InDelta(t, 1234.56, parseLegacyAmount("1234.56"), 0.0001)
}
