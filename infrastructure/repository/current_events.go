package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// CurrentEventRepository é o adaptador de origem da loja atual: consultas
// somente leitura sobre o esquema novo (ids inteiros), devolvendo eventos na
// forma intermediária comum. As regras de exclusão da própria origem
// (registros anulados, registros sem data) ficam nas cláusulas WHERE.
type CurrentEventRepository interface {
	Origin() domain.SchemaOrigin
	FetchRawEvents(ctx context.Context, kind domain.EventKind, dateRange domain.DateRange) ([]domain.RawEvent, error)
}

type currentEventRepository struct {
	conn         *postgres.Connection
	queryTimeout time.Duration
}

func NewCurrentEventRepository(conn *postgres.Connection, queryTimeout time.Duration) CurrentEventRepository {
	return &currentEventRepository{
		conn:         conn,
		queryTimeout: queryTimeout,
	}
}

func (r *currentEventRepository) Origin() domain.SchemaOrigin {
	return domain.OriginCurrent
}

func (r *currentEventRepository) FetchRawEvents(ctx context.Context, kind domain.EventKind, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	switch kind {
	case domain.EventAgreementSigned:
		return r.fetchSignedAgreements(ctx, dateRange)
	case domain.EventPaymentInvoiced:
		return r.fetchInvoicedPayments(ctx, dateRange)
	case domain.EventHandlingMilestone:
		return r.fetchMilestones(ctx, "handling", domain.EventHandlingMilestone, dateRange)
	case domain.EventSchedulingMilestone:
		return r.fetchMilestones(ctx, "scheduling", domain.EventSchedulingMilestone, dateRange)
	default:
		return nil, fmt.Errorf("tipo de evento desconhecido: %s", kind)
	}
}

// fetchSignedAgreements busca os três registros que podem implicar o mesmo
// fato de assinatura para um assunto — contrato, marco de tratativa e o
// campo signed_at do próprio assunto — e mescla por prioridade antes que o
// deduplicador os veja: contrato > marco > campo de data. Sai exatamente um
// RawEvent por assunto.
func (r *currentEventRepository) fetchSignedAgreements(ctx context.Context, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	contracts, err := r.querySignedContracts(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	milestones, err := r.querySignatureMilestones(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	dateFields, err := r.querySignedAtSubjects(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]domain.RawEvent)
	order := make([]string, 0, len(contracts)+len(milestones)+len(dateFields))

	// Prioridade crescente: o que entra depois não sobrescreve
	for _, batch := range [][]domain.RawEvent{contracts, milestones, dateFields} {
		for _, event := range batch {
			if _, exists := merged[event.SubjectID]; exists {
				continue
			}
			merged[event.SubjectID] = event
			order = append(order, event.SubjectID)
		}
	}

	events := make([]domain.RawEvent, 0, len(merged))
	for _, subjectID := range order {
		events = append(events, merged[subjectID])
	}

	return events, nil
}

func (r *currentEventRepository) querySignedContracts(ctx context.Context, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	query, args, err := squirrel.
		Select(
			"c.id", "c.subject_id", "c.signed_on", "c.amount", "c.vat_amount", "c.currency_code", "c.signer_id",
			"s.creator_id", "s.closer_id", "s.meeting_manager",
		).
		From("contracts c").
		Join("subjects s ON s.id = c.subject_id").
		Where(squirrel.Eq{"c.voided": false}).
		Where("c.signed_on IS NOT NULL").
		Where(squirrel.GtOrEq{"c.signed_on": dateRange.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"c.signed_on": dateRange.End.Format(time.DateOnly)}).
		OrderBy("c.signed_on ASC, c.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de contratos: %w", err)
	}
	defer rows.Close()

	events := make([]domain.RawEvent, 0)
	for rows.Next() {
		var (
			id, subjectID        int64
			signedOn             time.Time
			amount, vat          sql.NullFloat64
			currencyCode         sql.NullString
			signerID             sql.NullInt64
			creatorID, closerID  sql.NullInt64
			meetingManager       sql.NullString
		)

		if err := rows.Scan(&id, &subjectID, &signedOn, &amount, &vat, &currencyCode, &signerID, &creatorID, &closerID, &meetingManager); err != nil {
			return nil, fmt.Errorf("erro ao escanear contrato: %w", err)
		}

		event := domain.RawEvent{
			SchemaOrigin:           domain.OriginCurrent,
			RecordID:               "contract:" + strconv.FormatInt(id, 10),
			SubjectID:              strconv.FormatInt(subjectID, 10),
			EventKind:              domain.EventAgreementSigned,
			OccurredOn:             signedOn,
			Amount:                 amount.Float64,
			VATAmount:              vat.Float64,
			CurrencyCode:           currencyCode.String,
			SubjectAttributeFields: subjectFields(creatorID, closerID, meetingManager),
		}
		if signerID.Valid {
			signer := signerID.Int64
			event.ExplicitAttributeeID = &signer
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de contratos: %w", err)
	}

	return events, nil
}

func (r *currentEventRepository) querySignatureMilestones(ctx context.Context, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	query, args, err := squirrel.
		Select(
			"m.id", "m.subject_id", "m.occurred_on", "m.handled_by",
			"s.creator_id", "s.closer_id", "s.meeting_manager",
		).
		From("milestones m").
		Join("subjects s ON s.id = m.subject_id").
		Where(squirrel.Eq{"m.kind": "signature"}).
		Where("m.occurred_on IS NOT NULL").
		Where(squirrel.GtOrEq{"m.occurred_on": dateRange.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"m.occurred_on": dateRange.End.Format(time.DateOnly)}).
		OrderBy("m.occurred_on ASC, m.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de marcos de assinatura: %w", err)
	}
	defer rows.Close()

	events := make([]domain.RawEvent, 0)
	for rows.Next() {
		var (
			id, subjectID       int64
			occurredOn          time.Time
			handledBy           sql.NullInt64
			creatorID, closerID sql.NullInt64
			meetingManager      sql.NullString
		)

		if err := rows.Scan(&id, &subjectID, &occurredOn, &handledBy, &creatorID, &closerID, &meetingManager); err != nil {
			return nil, fmt.Errorf("erro ao escanear marco: %w", err)
		}

		event := domain.RawEvent{
			SchemaOrigin:           domain.OriginCurrent,
			RecordID:               "milestone:" + strconv.FormatInt(id, 10),
			SubjectID:              strconv.FormatInt(subjectID, 10),
			EventKind:              domain.EventAgreementSigned,
			OccurredOn:             occurredOn,
			SubjectAttributeFields: subjectFields(creatorID, closerID, meetingManager),
		}
		if handledBy.Valid {
			handler := handledBy.Int64
			event.ExplicitAttributeeID = &handler
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de marcos: %w", err)
	}

	return events, nil
}

func (r *currentEventRepository) querySignedAtSubjects(ctx context.Context, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	query, args, err := squirrel.
		Select("s.id", "s.signed_at", "s.creator_id", "s.closer_id", "s.meeting_manager").
		From("subjects s").
		Where(squirrel.Eq{"s.cancelled": false}).
		Where("s.signed_at IS NOT NULL").
		Where(squirrel.GtOrEq{"s.signed_at": dateRange.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"s.signed_at": dateRange.End.Format(time.DateOnly)}).
		OrderBy("s.signed_at ASC, s.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de assuntos assinados: %w", err)
	}
	defer rows.Close()

	events := make([]domain.RawEvent, 0)
	for rows.Next() {
		var (
			id                  int64
			signedAt            time.Time
			creatorID, closerID sql.NullInt64
			meetingManager      sql.NullString
		)

		if err := rows.Scan(&id, &signedAt, &creatorID, &closerID, &meetingManager); err != nil {
			return nil, fmt.Errorf("erro ao escanear assunto: %w", err)
		}

		events = append(events, domain.RawEvent{
			SchemaOrigin:           domain.OriginCurrent,
			RecordID:               "subject:" + strconv.FormatInt(id, 10),
			SubjectID:              strconv.FormatInt(id, 10),
			EventKind:              domain.EventAgreementSigned,
			OccurredOn:             signedAt,
			SubjectAttributeFields: subjectFields(creatorID, closerID, meetingManager),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de assuntos: %w", err)
	}

	return events, nil
}

func (r *currentEventRepository) fetchInvoicedPayments(ctx context.Context, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	query, args, err := squirrel.
		Select(
			"i.id", "i.subject_id", "i.due_on", "i.amount", "i.vat_amount", "i.currency_code", "i.collector_id",
			"s.creator_id", "s.closer_id", "s.meeting_manager",
		).
		From("invoices i").
		Join("subjects s ON s.id = i.subject_id").
		Where(squirrel.Eq{"i.voided": false}).
		Where("i.due_on IS NOT NULL").
		Where(squirrel.GtOrEq{"i.due_on": dateRange.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"i.due_on": dateRange.End.Format(time.DateOnly)}).
		OrderBy("i.due_on ASC, i.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de faturas: %w", err)
	}
	defer rows.Close()

	events := make([]domain.RawEvent, 0)
	for rows.Next() {
		var (
			id, subjectID       int64
			dueOn               time.Time
			amount, vat         sql.NullFloat64
			currencyCode        sql.NullString
			collectorID         sql.NullInt64
			creatorID, closerID sql.NullInt64
			meetingManager      sql.NullString
		)

		if err := rows.Scan(&id, &subjectID, &dueOn, &amount, &vat, &currencyCode, &collectorID, &creatorID, &closerID, &meetingManager); err != nil {
			return nil, fmt.Errorf("erro ao escanear fatura: %w", err)
		}

		fields := subjectFields(creatorID, closerID, meetingManager)
		if collectorID.Valid {
			fields = append([]domain.AttributeField{{
				Name:  "collector",
				Value: strconv.FormatInt(collectorID.Int64, 10),
			}}, fields...)
		}

		events = append(events, domain.RawEvent{
			SchemaOrigin:           domain.OriginCurrent,
			RecordID:               "invoice:" + strconv.FormatInt(id, 10),
			SubjectID:              strconv.FormatInt(subjectID, 10),
			EventKind:              domain.EventPaymentInvoiced,
			OccurredOn:             dueOn,
			Amount:                 amount.Float64,
			VATAmount:              vat.Float64,
			CurrencyCode:           currencyCode.String,
			SubjectAttributeFields: fields,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de faturas: %w", err)
	}

	return events, nil
}

func (r *currentEventRepository) fetchMilestones(ctx context.Context, milestoneKind string, eventKind domain.EventKind, dateRange domain.DateRange) ([]domain.RawEvent, error) {
	query, args, err := squirrel.
		Select("m.id", "m.subject_id", "m.occurred_on", "m.handled_by", "s.creator_id").
		From("milestones m").
		Join("subjects s ON s.id = m.subject_id").
		Where(squirrel.Eq{"m.kind": milestoneKind}).
		Where("m.occurred_on IS NOT NULL").
		Where(squirrel.GtOrEq{"m.occurred_on": dateRange.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"m.occurred_on": dateRange.End.Format(time.DateOnly)}).
		OrderBy("m.occurred_on ASC, m.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de marcos: %w", err)
	}
	defer rows.Close()

	events := make([]domain.RawEvent, 0)
	for rows.Next() {
		var (
			id, subjectID int64
			occurredOn    time.Time
			handledBy     sql.NullInt64
			creatorID     sql.NullInt64
		)

		if err := rows.Scan(&id, &subjectID, &occurredOn, &handledBy, &creatorID); err != nil {
			return nil, fmt.Errorf("erro ao escanear marco: %w", err)
		}

		fields := make([]domain.AttributeField, 0, 2)
		if handledBy.Valid {
			fieldName := "handler"
			if eventKind == domain.EventSchedulingMilestone {
				fieldName = "scheduler"
			}
			fields = append(fields, domain.AttributeField{
				Name:  fieldName,
				Value: strconv.FormatInt(handledBy.Int64, 10),
			})
		}
		if creatorID.Valid {
			fields = append(fields, domain.AttributeField{
				Name:  "creator",
				Value: strconv.FormatInt(creatorID.Int64, 10),
			})
		}

		events = append(events, domain.RawEvent{
			SchemaOrigin:           domain.OriginCurrent,
			RecordID:               "milestone:" + strconv.FormatInt(id, 10),
			SubjectID:              strconv.FormatInt(subjectID, 10),
			EventKind:              eventKind,
			OccurredOn:             occurredOn,
			SubjectAttributeFields: fields,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de marcos: %w", err)
	}

	return events, nil
}

// subjectFields monta os campos identificadores do assunto na forma comum.
// O esquema atual guarda criador e fechador como chave estrangeira e o
// gestor da reunião como nome desnormalizado; o adaptador converte tudo
// para a forma comum para que o resolvedor fique agnóstico de esquema.
func subjectFields(creatorID, closerID sql.NullInt64, meetingManager sql.NullString) []domain.AttributeField {
	fields := make([]domain.AttributeField, 0, 3)

	if creatorID.Valid {
		fields = append(fields, domain.AttributeField{
			Name:  "creator",
			Value: strconv.FormatInt(creatorID.Int64, 10),
		})
	}
	if closerID.Valid {
		fields = append(fields, domain.AttributeField{
			Name:  "closer",
			Value: strconv.FormatInt(closerID.Int64, 10),
		})
	}
	if meetingManager.Valid && meetingManager.String != "" {
		fields = append(fields, domain.AttributeField{
			Name:  "meeting_manager",
			Value: meetingManager.String,
		})
	}

	return fields
}
