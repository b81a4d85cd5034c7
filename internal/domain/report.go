package domain

import (
	"strconv"
	"time"
)

// Chaves das linhas agregadas que não são departamentos
const (
	RowGeneral = "general"
	RowTotal   = "total"
)

// DepartmentRowKey monta a chave de linha de um departamento
func DepartmentRowKey(departmentID int64) string {
	return "department:" + strconv.FormatInt(departmentID, 10)
}

// AggregationCell acumula contagem e valor de uma (janela, linha) durante a
// agregação. Os valores ficam sem arredondamento até a montagem do relatório.
type AggregationCell struct {
	Count  int
	Amount float64
}

// CellReport é uma célula pronta para exibição: valor com teto aplicado,
// meta e comparação contra a meta.
type CellReport struct {
	Count           int     `json:"count"`
	Amount          float64 `json:"amount"`
	Expected        float64 `json:"expected"`
	PercentComplete float64 `json:"percent_complete"`
	IsAboveTarget   bool    `json:"is_above_target"`
}

// RowReport coloca os dois tipos de evento lado a lado para uma mesma linha,
// como o painel exibe assinados e faturados na mesma tabela.
type RowReport struct {
	DepartmentID   *int64     `json:"department_id,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	Signed         CellReport `json:"signed"`
	Invoiced       CellReport `json:"invoiced"`
}

// WindowReport agrupa as linhas de uma janela de relatório
type WindowReport struct {
	Start time.Time             `json:"start"`
	End   time.Time             `json:"end"`
	Rows  map[string]*RowReport `json:"rows"`
}

// SourceFailure registra uma busca que falhou ou estourou o tempo limite.
// A execução continua com zero eventos daquela origem.
type SourceFailure struct {
	SchemaOrigin SchemaOrigin `json:"schema_origin"`
	EventKind    EventKind    `json:"event_kind"`
	Reason       string       `json:"reason"`
}

// MeetingActivity resume os marcos de reunião do mês selecionado: quantas
// reuniões foram agendadas e quantas foram realizadas.
type MeetingActivity struct {
	Scheduled int `json:"scheduled"`
	Handled   int `json:"handled"`
}

// ReportDiagnostics expõe resultados normais porém dignos de nota: eventos
// sem atribuição e moedas desconhecidas não são erros, mas o painel pode
// querer exibi-los.
type ReportDiagnostics struct {
	UnattributedEvents int `json:"unattributed_events"`
	UnknownCurrencies  int `json:"unknown_currencies"`
}

// Report é a saída da fachada de relatórios: janela -> linha -> células,
// totalmente calculada e pronta para serialização.
type Report struct {
	ReferenceDate time.Time                        `json:"reference_date"`
	Month         int                              `json:"month"`
	Year          int                              `json:"year"`
	Windows       map[WindowName]*WindowReport     `json:"windows"`
	Partial       bool                             `json:"partial"`
	FailedSources []SourceFailure                  `json:"failed_sources,omitempty"`
	Meetings      MeetingActivity                  `json:"meetings"`
	Diagnostics   ReportDiagnostics                `json:"diagnostics"`
	GeneratedAt   time.Time                        `json:"generated_at"`
}
