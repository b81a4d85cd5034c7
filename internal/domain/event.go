package domain

import (
	"fmt"
	"time"
)

// SchemaOrigin identifica de qual sistema histórico o registro veio
type SchemaOrigin string

const (
	OriginLegacy  SchemaOrigin = "legacy"
	OriginCurrent SchemaOrigin = "current"
)

// EventKind identifica o tipo de fato de negócio representado pelo evento
type EventKind string

const (
	EventAgreementSigned     EventKind = "agreement_signed"
	EventPaymentInvoiced     EventKind = "payment_invoiced"
	EventHandlingMilestone   EventKind = "handling_milestone"
	EventSchedulingMilestone EventKind = "scheduling_milestone"
)

// AggregatedKinds são os tipos de evento que aparecem lado a lado no relatório
var AggregatedKinds = []EventKind{EventAgreementSigned, EventPaymentInvoiced}

// MilestoneKinds são os marcos de reunião. Não viram linhas por departamento;
// entram no relatório como volume de atividade do mês selecionado.
var MilestoneKinds = []EventKind{EventSchedulingMilestone, EventHandlingMilestone}

// AttributeField é um campo identificador de responsável carregado pelo
// assunto do evento. O valor pode ser um id numérico ou um nome de exibição,
// dependendo do que a origem armazenou.
type AttributeField struct {
	Name  string
	Value string
}

// RawEvent é um registro como lido da origem, antes de deduplicação e
// atribuição. Criado a cada busca, imutável, nunca persistido pelo core.
type RawEvent struct {
	SchemaOrigin           SchemaOrigin
	RecordID               string
	SubjectID              string
	EventKind              EventKind
	OccurredOn             time.Time
	Amount                 float64
	VATAmount              float64
	CurrencyCode           string
	ExplicitAttributeeID   *int64
	SubjectAttributeFields []AttributeField
}

// CanonicalKey é a chave de deduplicação: mesma origem + mesmo assunto
// significa o mesmo fato de negócio.
func (e RawEvent) CanonicalKey() string {
	return fmt.Sprintf("%s:%s", e.SchemaOrigin, e.SubjectID)
}

// CanonicalEvent é a representação um-fato-um-registro após deduplicação,
// atribuição e conversão de moeda. Invariante: no máximo um CanonicalEvent
// por (CanonicalKey, EventKind) em uma execução de agregação.
type CanonicalEvent struct {
	CanonicalKey              string
	EventKind                 EventKind
	OccurredOn                time.Time
	AmountInReportingCurrency float64
	AttributedEmployeeID      *int64
	AttributedDepartmentID    *int64
}
