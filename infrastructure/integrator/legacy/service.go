package legacy

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	legacydomain "github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/domain"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/legacyclient"
	"github.com/vfg2006/performance-dashboard-api/internal/config"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// LegacyIntegrator é o adaptador de origem da loja legada: consulta a API
// somente leitura do sistema antigo e devolve os registros na forma
// intermediária comum, já com o vocabulário reconciliado.
type LegacyIntegrator interface {
	Origin() domain.SchemaOrigin
	FetchRawEvents(ctx context.Context, kind domain.EventKind, dateRange domain.DateRange) ([]domain.RawEvent, error)
}

type LegacyService struct {
	cfg    *config.Config
	Client legacyclient.Client
}

func New(cfg *config.Config, client legacyclient.Client) LegacyIntegrator {
	return &LegacyService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *LegacyService) Origin() domain.SchemaOrigin {
	return domain.OriginLegacy
}

// recordKindFor traduz o tipo de evento do core para o vocabulário da API
// legada.
func recordKindFor(kind domain.EventKind) string {
	switch kind {
	case domain.EventAgreementSigned:
		return legacydomain.RecordDealWon
	case domain.EventPaymentInvoiced:
		return legacydomain.RecordInvoice
	case domain.EventHandlingMilestone:
		return legacydomain.RecordMeetingDone
	case domain.EventSchedulingMilestone:
		return legacydomain.RecordMeetingBooked
	default:
		return ""
	}
}

// FetchRawEvents consulta a API legada por tipo e período. As regras de
// exclusão da origem se aplicam aqui: registros cancelados e registros sem
// data de vencimento ficam de fora.
func (s *LegacyService) FetchRawEvents(ctx context.Context, kind domain.EventKind, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	recordKind := recordKindFor(kind)
	if recordKind == "" {
		return []domain.RawEvent{}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := s.Client.GetRecords(legacydomain.GetRecordsParams{
		Kind:      recordKind,
		StartDate: dateRange.Start.Format(time.DateOnly),
		EndDate:   dateRange.End.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.RawEvent, 0, len(resp.Items))
	for _, record := range resp.Items {
		if record.Status == legacydomain.RecordStatusCancelled {
			continue
		}
		if record.DueDate == "" {
			continue
		}

		occurredOn, err := time.Parse(time.DateOnly, record.DueDate)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"record_id": record.ID,
				"due_date":  record.DueDate,
			}).Warn("Registro legado com data inválida, ignorando")
			continue
		}

		events = append(events, domain.RawEvent{
			SchemaOrigin:           domain.OriginLegacy,
			RecordID:               record.ID,
			SubjectID:              record.LeadID,
			EventKind:              kind,
			OccurredOn:             occurredOn,
			Amount:                 parseLegacyAmount(record.Value),
			VATAmount:              parseLegacyAmount(record.Tax),
			CurrencyCode:           record.Currency,
			ExplicitAttributeeID:   record.OwnerID,
			SubjectAttributeFields: legacyAttributeFields(kind, record),
		})
	}

	return events, nil
}

// parseLegacyAmount interpreta o valor monetário que a API legada devolve
// como string decimal. Valor ilegível vira zero: o evento ainda conta.
func parseLegacyAmount(value string) float64 {
	if value == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("Valor monetário legado ilegível, assumindo zero")
		return 0
	}

	return amount
}

// legacyAttributeFields reconcilia os nomes de campo do esquema legado com
// os nomes comuns que o resolvedor conhece, na ordem de prioridade de cada
// tipo de evento.
func legacyAttributeFields(kind domain.EventKind, record legacydomain.Record) []domain.AttributeField {
	fields := make([]domain.AttributeField, 0, 3)

	appendField := func(name, value string) {
		if value != "" {
			fields = append(fields, domain.AttributeField{Name: name, Value: value})
		}
	}

	switch kind {
	case domain.EventPaymentInvoiced:
		appendField("collector", record.CollectorUser)
		appendField("creator", record.CreatedUser)
	case domain.EventHandlingMilestone:
		appendField("handler", record.MeetingUser)
		appendField("creator", record.CreatedUser)
	case domain.EventSchedulingMilestone:
		appendField("scheduler", record.MeetingUser)
		appendField("creator", record.CreatedUser)
	default:
		appendField("creator", record.CreatedUser)
		appendField("closer", record.ClosedUser)
		appendField("meeting_manager", record.MeetingUser)
	}

	return fields
}
