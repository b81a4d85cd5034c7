package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// EventSource é um adaptador de origem: busca eventos brutos de um tipo em
// um intervalo, já com as regras de exclusão da própria origem aplicadas.
// A loja atual (Postgres) e a loja legada (API HTTP) implementam esta
// interface; todo o restante do pipeline é agnóstico de esquema.
type EventSource interface {
	Origin() domain.SchemaOrigin
	FetchRawEvents(ctx context.Context, kind domain.EventKind, dateRange domain.DateRange) ([]domain.RawEvent, error)
}

// Reporter é a fachada de relatórios consumida pela camada de apresentação
type Reporter interface {
	// BuildReport monta o relatório completo de janelas a partir da data de
	// referência e do mês/ano selecionados.
	BuildReport(ctx context.Context, referenceDate time.Time, month time.Month, year int) (*domain.Report, error)

	// BuildReportForDepartment monta o mesmo relatório restrito às linhas de
	// um departamento.
	BuildReportForDepartment(ctx context.Context, referenceDate time.Time, month time.Month, year int, departmentID int64) (*domain.Report, error)

	// BuildReportForEmployee resolve o departamento do funcionário no
	// diretório e monta o relatório restrito, usado no "meu desempenho".
	BuildReportForEmployee(ctx context.Context, referenceDate time.Time, month time.Month, year int, employeeID int64) (*domain.Report, error)
}
