package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/converting"
	"go.uber.org/mock/gomock"
)

type staticRates struct {
	reporting string
	rates     map[string]float64
}

func (s staticRates) Rate(code string) (float64, bool) {
	rate, ok := s.rates[code]
	return rate, ok
}

func (s staticRates) ReportingCurrency() string {
	return s.reporting
}

type stubSource struct {
	origin domain.SchemaOrigin
	events map[domain.EventKind][]domain.RawEvent
	errs   map[domain.EventKind]error
}

func (s *stubSource) Origin() domain.SchemaOrigin {
	return s.origin
}

func (s *stubSource) FetchRawEvents(_ context.Context, kind domain.EventKind, _ domain.DateRange) ([]domain.RawEvent, error) {
	if err := s.errs[kind]; err != nil {
		return nil, err
	}
	return s.events[kind], nil
}

func newTestNormalizer() *converting.Normalizer {
	return converting.NewNormalizer(staticRates{
		reporting: "BRL",
		rates:     map[string]float64{"USD": 5.0},
	})
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestBuildReport(t *testing.T) {
	referenceDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	departments := []*domain.Department{
		{ID: 3, Name: "Comercial", TargetAmount: 1000, IsTracked: true},
		{ID: 4, Name: "Expansão", TargetAmount: 500, IsTracked: true},
	}

	employees := []*domain.Employee{
		{ID: 7, DisplayName: "Ana Souza", DepartmentID: int64Ptr(3)},
	}

	t.Run("agrega eventos das duas origens com atribuição, conversão e dedupe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		legacy := &stubSource{
			origin: domain.OriginLegacy,
			events: map[domain.EventKind][]domain.RawEvent{
				domain.EventAgreementSigned: {
					{
						SchemaOrigin: domain.OriginLegacy,
						RecordID:     "L100",
						SubjectID:    "L100",
						EventKind:    domain.EventAgreementSigned,
						OccurredOn:   referenceDate,
						Amount:       100,
						CurrencyCode: "USD",
						SubjectAttributeFields: []domain.AttributeField{
							{Name: "creator", Value: "Ana Souza"},
						},
					},
					// Duplicata do mesmo assunto: deve ser descartada
					{
						SchemaOrigin: domain.OriginLegacy,
						RecordID:     "L100",
						SubjectID:    "L100",
						EventKind:    domain.EventAgreementSigned,
						OccurredOn:   referenceDate,
						Amount:       100,
						CurrencyCode: "USD",
					},
				},
			},
		}

		current := &stubSource{
			origin: domain.OriginCurrent,
			events: map[domain.EventKind][]domain.RawEvent{
				domain.EventPaymentInvoiced: {
					{
						SchemaOrigin:         domain.OriginCurrent,
						RecordID:             "900",
						SubjectID:            "900",
						EventKind:            domain.EventPaymentInvoiced,
						OccurredOn:           referenceDate.AddDate(0, 0, -5),
						Amount:               200,
						VATAmount:            50,
						ExplicitAttributeeID: int64Ptr(7),
					},
				},
			},
		}

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().ListTrackedDepartments(gomock.Any()).Return(departments, nil)
		directory.EXPECT().FindEmployees(gomock.Any(), gomock.Any(), gomock.Any()).Return(employees, nil)

		service := NewService([]EventSource{legacy, current}, directory, newTestNormalizer(), 8)

		report, err := service.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)
		assert.False(t, report.Partial)
		assert.Empty(t, report.FailedSources)
		assert.Len(t, report.Windows, 3)

		// USD 100 * 5.0 = 500, atribuído ao departamento 3 via nome do criador
		deptKey := domain.DepartmentRowKey(3)
		today := report.Windows[domain.WindowToday]
		assert.Equal(t, 1, today.Rows[deptKey].Signed.Count)
		assert.Equal(t, 500.0, today.Rows[deptKey].Signed.Amount)

		// A fatura de cinco dias atrás não entra em "hoje", mas entra nos 30 dias
		assert.Equal(t, 0, today.Rows[deptKey].Invoiced.Count)

		last30 := report.Windows[domain.WindowLast30Days]
		assert.Equal(t, 1, last30.Rows[deptKey].Invoiced.Count)
		assert.Equal(t, 250.0, last30.Rows[deptKey].Invoiced.Amount)

		// Total é a soma explícita dos departamentos rastreados
		assert.Equal(t, 500.0, last30.Rows[domain.RowTotal].Signed.Amount)
		assert.Equal(t, 250.0, last30.Rows[domain.RowTotal].Invoiced.Amount)

		// Meta só aparece no mês selecionado
		month := report.Windows[domain.WindowSelectedMonth]
		assert.Equal(t, 1000.0, month.Rows[deptKey].Signed.Expected)
		assert.Equal(t, 0.5, month.Rows[deptKey].Signed.PercentComplete)
		assert.False(t, month.Rows[deptKey].Signed.IsAboveTarget)
		assert.Equal(t, 1500.0, month.Rows[domain.RowTotal].Signed.Expected)
		assert.Equal(t, 0.0, last30.Rows[deptKey].Signed.Expected)

		// Mês selecionado não tem linha geral
		assert.NotContains(t, month.Rows, domain.RowGeneral)
		assert.Contains(t, last30.Rows, domain.RowGeneral)

		assert.Equal(t, 0, report.Diagnostics.UnattributedEvents)
		assert.Equal(t, 0, report.Diagnostics.UnknownCurrencies)
	})

	t.Run("falha de uma origem gera resultado parcial sem derrubar o restante", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		legacy := &stubSource{
			origin: domain.OriginLegacy,
			errs: map[domain.EventKind]error{
				domain.EventPaymentInvoiced: errors.New("timeout"),
			},
			events: map[domain.EventKind][]domain.RawEvent{
				domain.EventAgreementSigned: {
					{
						SchemaOrigin: domain.OriginLegacy,
						RecordID:     "L7",
						SubjectID:    "L7",
						EventKind:    domain.EventAgreementSigned,
						OccurredOn:   referenceDate,
						Amount:       80,
					},
				},
			},
		}

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().ListTrackedDepartments(gomock.Any()).Return(departments, nil)

		service := NewService([]EventSource{legacy}, directory, newTestNormalizer(), 8)

		report, err := service.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)
		assert.True(t, report.Partial)
		assert.Len(t, report.FailedSources, 1)
		assert.Equal(t, domain.OriginLegacy, report.FailedSources[0].SchemaOrigin)
		assert.Equal(t, domain.EventPaymentInvoiced, report.FailedSources[0].EventKind)

		// O evento assinado sem atribuição ainda conta na linha geral
		today := report.Windows[domain.WindowToday]
		assert.Equal(t, 1, today.Rows[domain.RowGeneral].Signed.Count)
		assert.Equal(t, 80.0, today.Rows[domain.RowGeneral].Signed.Amount)
		assert.Equal(t, 0.0, today.Rows[domain.RowTotal].Signed.Amount)
		assert.Equal(t, 1, report.Diagnostics.UnattributedEvents)
	})

	t.Run("moeda desconhecida usa taxa 1 e acumula diagnóstico", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		legacy := &stubSource{
			origin: domain.OriginLegacy,
			events: map[domain.EventKind][]domain.RawEvent{
				domain.EventAgreementSigned: {
					{
						SchemaOrigin:         domain.OriginLegacy,
						RecordID:             "L9",
						SubjectID:            "L9",
						EventKind:            domain.EventAgreementSigned,
						OccurredOn:           referenceDate,
						Amount:               42,
						CurrencyCode:         "XYZ",
						ExplicitAttributeeID: int64Ptr(7),
					},
				},
			},
		}

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().ListTrackedDepartments(gomock.Any()).Return(departments, nil)
		directory.EXPECT().FindEmployees(gomock.Any(), gomock.Any(), gomock.Any()).Return(employees, nil)

		service := NewService([]EventSource{legacy}, directory, newTestNormalizer(), 8)

		report, err := service.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)
		assert.Equal(t, 1, report.Diagnostics.UnknownCurrencies)

		deptKey := domain.DepartmentRowKey(3)
		assert.Equal(t, 42.0, report.Windows[domain.WindowToday].Rows[deptKey].Signed.Amount)
	})

	t.Run("nome armazenado com espaços duplicados ainda atribui o evento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		legacy := &stubSource{
			origin: domain.OriginLegacy,
			events: map[domain.EventKind][]domain.RawEvent{
				domain.EventAgreementSigned: {
					{
						SchemaOrigin: domain.OriginLegacy,
						RecordID:     "L11",
						SubjectID:    "L11",
						EventKind:    domain.EventAgreementSigned,
						OccurredOn:   referenceDate,
						Amount:       30,
						SubjectAttributeFields: []domain.AttributeField{
							{Name: "creator", Value: "ana souza"},
						},
					},
				},
			},
		}

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().ListTrackedDepartments(gomock.Any()).Return(departments, nil)
		directory.EXPECT().FindEmployees(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*domain.Employee{
				{ID: 7, DisplayName: "Ana  Souza", DepartmentID: int64Ptr(3)},
			}, nil)

		service := NewService([]EventSource{legacy}, directory, newTestNormalizer(), 8)

		report, err := service.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)
		assert.Equal(t, 0, report.Diagnostics.UnattributedEvents)

		deptKey := domain.DepartmentRowKey(3)
		assert.Equal(t, 30.0, report.Windows[domain.WindowToday].Rows[deptKey].Signed.Amount)
	})

	t.Run("marcos de reunião do mês selecionado viram volume de atividade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		current := &stubSource{
			origin: domain.OriginCurrent,
			events: map[domain.EventKind][]domain.RawEvent{
				domain.EventSchedulingMilestone: {
					{
						SchemaOrigin: domain.OriginCurrent,
						RecordID:     "milestone:1",
						SubjectID:    "501",
						EventKind:    domain.EventSchedulingMilestone,
						OccurredOn:   referenceDate,
					},
					// Duplicata do mesmo assunto: descartada antes da contagem
					{
						SchemaOrigin: domain.OriginCurrent,
						RecordID:     "milestone:2",
						SubjectID:    "501",
						EventKind:    domain.EventSchedulingMilestone,
						OccurredOn:   referenceDate,
					},
				},
				domain.EventHandlingMilestone: {
					{
						SchemaOrigin: domain.OriginCurrent,
						RecordID:     "milestone:3",
						SubjectID:    "502",
						EventKind:    domain.EventHandlingMilestone,
						OccurredOn:   referenceDate,
					},
					// Fora do mês selecionado: não conta
					{
						SchemaOrigin: domain.OriginCurrent,
						RecordID:     "milestone:4",
						SubjectID:    "503",
						EventKind:    domain.EventHandlingMilestone,
						OccurredOn:   referenceDate.AddDate(0, -2, 0),
					},
				},
			},
		}

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().ListTrackedDepartments(gomock.Any()).Return(departments, nil)

		service := NewService([]EventSource{current}, directory, newTestNormalizer(), 8)

		report, err := service.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)
		assert.Equal(t, 1, report.Meetings.Scheduled)
		assert.Equal(t, 1, report.Meetings.Handled)

		// Marcos não viram linhas nem valores por departamento
		assert.Equal(t, 0.0, report.Windows[domain.WindowSelectedMonth].Rows[domain.RowTotal].Signed.Amount)
	})

	t.Run("parâmetros inválidos são o único erro fatal", func(t *testing.T) {
		service := NewService(nil, nil, newTestNormalizer(), 8)

		_, err := service.BuildReport(context.Background(), referenceDate, 0, 2024)
		assert.ErrorIs(t, err, ErrInvalidReferenceParameters)

		_, err = service.BuildReport(context.Background(), referenceDate, time.March, 0)
		assert.ErrorIs(t, err, ErrInvalidReferenceParameters)

		_, err = service.BuildReport(context.Background(), time.Time{}, time.March, 2024)
		assert.ErrorIs(t, err, ErrInvalidReferenceParameters)
	})
}

func TestBuildReportForDepartment(t *testing.T) {
	referenceDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	departments := []*domain.Department{
		{ID: 3, Name: "Comercial", TargetAmount: 1000, IsTracked: true},
		{ID: 4, Name: "Expansão", TargetAmount: 500, IsTracked: true},
	}

	legacy := &stubSource{
		origin: domain.OriginLegacy,
		events: map[domain.EventKind][]domain.RawEvent{
			domain.EventAgreementSigned: {
				{
					SchemaOrigin:         domain.OriginLegacy,
					RecordID:             "L1",
					SubjectID:            "L1",
					EventKind:            domain.EventAgreementSigned,
					OccurredOn:           referenceDate,
					Amount:               10,
					ExplicitAttributeeID: int64Ptr(7),
				},
			},
		},
	}

	directory := mocks.NewMockDirectoryRepository(ctrl)
	directory.EXPECT().ListTrackedDepartments(gomock.Any()).Return(departments, nil)
	directory.EXPECT().FindEmployees(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.Employee{{ID: 7, DisplayName: "Ana Souza", DepartmentID: int64Ptr(3)}}, nil)

	service := NewService([]EventSource{legacy}, directory, newTestNormalizer(), 8)

	report, err := service.BuildReportForDepartment(context.Background(), referenceDate, time.March, 2024, 3)
	assert.NoError(t, err)

	deptKey := domain.DepartmentRowKey(3)
	for _, window := range report.Windows {
		assert.Contains(t, window.Rows, deptKey)
		assert.Contains(t, window.Rows, domain.RowTotal)
		assert.NotContains(t, window.Rows, domain.RowGeneral)
		assert.NotContains(t, window.Rows, domain.DepartmentRowKey(4))
	}
}

func TestBuildReportForEmployee(t *testing.T) {
	referenceDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("funcionário sem departamento não tem relatório próprio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().FindEmployees(gomock.Any(), []int64{9}, nil).
			Return([]*domain.Employee{{ID: 9, DisplayName: "Bruno Lima"}}, nil)

		service := NewService(nil, directory, newTestNormalizer(), 8)

		_, err := service.BuildReportForEmployee(context.Background(), referenceDate, time.March, 2024, 9)
		assert.ErrorIs(t, err, ErrDepartmentRequired)
	})

	t.Run("funcionário desconhecido não tem relatório próprio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		directory := mocks.NewMockDirectoryRepository(ctrl)
		directory.EXPECT().FindEmployees(gomock.Any(), []int64{42}, nil).
			Return([]*domain.Employee{}, nil)

		service := NewService(nil, directory, newTestNormalizer(), 8)

		_, err := service.BuildReportForEmployee(context.Background(), referenceDate, time.March, 2024, 42)
		assert.ErrorIs(t, err, ErrDepartmentRequired)
	})
}
