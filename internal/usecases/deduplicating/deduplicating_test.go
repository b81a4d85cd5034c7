package deduplicating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

func rawEvent(origin domain.SchemaOrigin, subjectID string, amount float64) domain.RawEvent {
	return domain.RawEvent{
		SchemaOrigin: origin,
		RecordID:     "rec-" + subjectID,
		SubjectID:    subjectID,
		EventKind:    domain.EventAgreementSigned,
		OccurredOn:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:       amount,
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		events   []domain.RawEvent
		validate func(t *testing.T, result []domain.RawEvent)
	}{
		{
			name:   "Entrada vazia retorna slice vazio",
			events: []domain.RawEvent{},
			validate: func(t *testing.T, result []domain.RawEvent) {
				assert.Empty(t, result)
			},
		},
		{
			name: "Chaves duplicadas mantém a primeira entrada vista",
			events: []domain.RawEvent{
				rawEvent(domain.OriginLegacy, "L100", 1000),
				rawEvent(domain.OriginLegacy, "L100", 2000),
				rawEvent(domain.OriginLegacy, "L100", 3000),
			},
			validate: func(t *testing.T, result []domain.RawEvent) {
				assert.Len(t, result, 1)
				assert.Equal(t, 1000.0, result[0].Amount)
			},
		},
		{
			name: "Mesmo assunto em origens diferentes gera chaves distintas",
			events: []domain.RawEvent{
				rawEvent(domain.OriginLegacy, "100", 1000),
				rawEvent(domain.OriginCurrent, "100", 2000),
			},
			validate: func(t *testing.T, result []domain.RawEvent) {
				assert.Len(t, result, 2)
			},
		},
		{
			name: "Eventos sem assunto são descartados",
			events: []domain.RawEvent{
				rawEvent(domain.OriginLegacy, "", 500),
				rawEvent(domain.OriginCurrent, "C7", 700),
			},
			validate: func(t *testing.T, result []domain.RawEvent) {
				assert.Len(t, result, 1)
				assert.Equal(t, "C7", result[0].SubjectID)
			},
		},
		{
			name: "Ordem estável preservada entre chaves distintas",
			events: []domain.RawEvent{
				rawEvent(domain.OriginLegacy, "L3", 1),
				rawEvent(domain.OriginLegacy, "L1", 2),
				rawEvent(domain.OriginLegacy, "L2", 3),
				rawEvent(domain.OriginLegacy, "L1", 4),
			},
			validate: func(t *testing.T, result []domain.RawEvent) {
				assert.Len(t, result, 3)
				assert.Equal(t, "L3", result[0].SubjectID)
				assert.Equal(t, "L1", result[1].SubjectID)
				assert.Equal(t, "L2", result[2].SubjectID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Dedupe(tt.events))
		})
	}
}

// Rodar a deduplicação duas vezes sobre a mesma entrada, ou sobre uma entrada
// com o mesmo evento triplicado, produz saída idêntica.
func TestDedupeIdempotent(t *testing.T) {
	events := []domain.RawEvent{
		rawEvent(domain.OriginLegacy, "L100", 1000),
		rawEvent(domain.OriginLegacy, "L100", 1000),
		rawEvent(domain.OriginLegacy, "L100", 1000),
		rawEvent(domain.OriginCurrent, "C200", 500),
	}

	once := Dedupe(events)
	twice := Dedupe(once)

	assert.Equal(t, once, twice)
	assert.Len(t, twice, 2)
}
