package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/attributing"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/converting"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/deduplicating"
	"github.com/vfg2006/performance-dashboard-api/pkg/metrics"
	"github.com/vfg2006/performance-dashboard-api/pkg/utils"
)

// fetchOrder fixa a ordem de concatenação dos resultados por origem, para
// que a deduplicação veja sempre a mesma ordem de entrada independente de
// qual goroutine terminou primeiro.
var fetchOrder = []domain.SchemaOrigin{domain.OriginLegacy, domain.OriginCurrent}

// Service é a fachada de relatórios: orquestra busca, deduplicação,
// atribuição, conversão de moeda, agregação e comparação contra meta. Tudo
// é criado por invocação e descartado ao final; não há estado entre
// execuções.
type Service struct {
	sources              []EventSource
	directory            repository.DirectoryRepository
	normalizer           *converting.Normalizer
	maxConcurrentFetches int
}

func NewService(
	sources []EventSource,
	directory repository.DirectoryRepository,
	normalizer *converting.Normalizer,
	maxConcurrentFetches int,
) Reporter {
	if maxConcurrentFetches <= 0 {
		maxConcurrentFetches = 8
	}

	return &Service{
		sources:              sources,
		directory:            directory,
		normalizer:           normalizer,
		maxConcurrentFetches: maxConcurrentFetches,
	}
}

type fetchResult struct {
	origin domain.SchemaOrigin
	kind   domain.EventKind
	events []domain.RawEvent
	err    error
}

// BuildReport monta o relatório de desempenho. Parâmetros inválidos são o
// único erro fatal; falha de origem vira resultado parcial sinalizado em
// FailedSources, porque um número defasado no painel vale mais do que
// nenhum.
func (s *Service) BuildReport(ctx context.Context, referenceDate time.Time, month time.Month, year int) (*domain.Report, error) {
	if month < time.January || month > time.December || year <= 0 || referenceDate.IsZero() {
		return nil, ErrInvalidReferenceParameters
	}

	windows := domain.ComputeWindows(referenceDate, month, year)
	bounds := domain.BoundingRange(windows)

	fetchKinds := make([]domain.EventKind, 0, len(domain.AggregatedKinds)+len(domain.MilestoneKinds))
	fetchKinds = append(fetchKinds, domain.AggregatedKinds...)
	fetchKinds = append(fetchKinds, domain.MilestoneKinds...)

	eventsByKind, failures := s.fetchAll(ctx, fetchKinds, bounds)

	departments, err := s.directory.ListTrackedDepartments(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar departamentos rastreados")
		failures = append(failures, domain.SourceFailure{
			SchemaOrigin: domain.OriginCurrent,
			EventKind:    "",
			Reason:       "directory: " + err.Error(),
		})
		departments = []*domain.Department{}
	}

	index, indexFailure := s.buildEmployeeIndex(ctx, eventsByKind)
	if indexFailure != nil {
		failures = append(failures, *indexFailure)
	}

	diagnostics := domain.ReportDiagnostics{}
	resultsByKind := make(map[domain.EventKind]aggregating.Result, len(domain.AggregatedKinds))
	for _, kind := range domain.AggregatedKinds {
		canonical := s.canonicalize(deduplicating.Dedupe(eventsByKind[kind]), index, &diagnostics)
		resultsByKind[kind] = aggregating.Aggregate(canonical, windows, departments)
	}

	meetings := meetingActivity(eventsByKind, windows)

	report := assembleReport(referenceDate, month, year, windows, departments, resultsByKind, meetings, failures, diagnostics)

	status := "complete"
	if report.Partial {
		status = "partial"
	}
	metrics.ReportsBuilt.WithLabelValues(status).Inc()

	return report, nil
}

// BuildReportForDepartment monta o relatório restrito a um departamento,
// mantendo a linha de total geral para referência.
func (s *Service) BuildReportForDepartment(ctx context.Context, referenceDate time.Time, month time.Month, year int, departmentID int64) (*domain.Report, error) {
	report, err := s.BuildReport(ctx, referenceDate, month, year)
	if err != nil {
		return nil, err
	}

	key := domain.DepartmentRowKey(departmentID)
	for _, window := range report.Windows {
		filtered := make(map[string]*domain.RowReport, 2)
		if row, ok := window.Rows[key]; ok {
			filtered[key] = row
		}
		if row, ok := window.Rows[domain.RowTotal]; ok {
			filtered[domain.RowTotal] = row
		}
		window.Rows = filtered
	}

	return report, nil
}

// BuildReportForEmployee resolve o departamento do funcionário no diretório
// antes de montar o relatório restrito.
func (s *Service) BuildReportForEmployee(ctx context.Context, referenceDate time.Time, month time.Month, year int, employeeID int64) (*domain.Report, error) {
	employees, err := s.directory.FindEmployees(ctx, []int64{employeeID}, nil)
	if err != nil {
		return nil, err
	}

	if len(employees) == 0 || employees[0].DepartmentID == nil {
		return nil, ErrDepartmentRequired
	}

	return s.BuildReportForDepartment(ctx, referenceDate, month, year, *employees[0].DepartmentID)
}

// fetchAll dispara uma tarefa por (tipo de evento, origem), limitada pelo
// semáforo, e junta tudo antes da deduplicação. Nenhum estado mutável é
// compartilhado entre as goroutines além do slice de resultados protegido
// por mutex; a agregação roda em uma única goroutine depois da barreira.
func (s *Service) fetchAll(ctx context.Context, kinds []domain.EventKind, bounds domain.DateRange) (map[domain.EventKind][]domain.RawEvent, []domain.SourceFailure) {
	semaphore := make(chan struct{}, s.maxConcurrentFetches)

	var wg sync.WaitGroup
	var mutex sync.Mutex
	results := make([]fetchResult, 0, len(kinds)*len(s.sources))

	for _, kind := range kinds {
		for _, source := range s.sources {
			wg.Add(1)

			go func(kind domain.EventKind, source EventSource) {
				defer wg.Done()

				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				started := time.Now()
				events, err := source.FetchRawEvents(ctx, kind, bounds)
				metrics.SourceFetchDuration.WithLabelValues(string(source.Origin())).Observe(time.Since(started).Seconds())

				status := "ok"
				if err != nil {
					status = "error"
				}
				metrics.SourceFetches.WithLabelValues(string(source.Origin()), string(kind), status).Inc()

				mutex.Lock()
				results = append(results, fetchResult{
					origin: source.Origin(),
					kind:   kind,
					events: events,
					err:    err,
				})
				mutex.Unlock()
			}(kind, source)
		}
	}

	wg.Wait()

	eventsByKind := make(map[domain.EventKind][]domain.RawEvent, len(kinds))
	failures := make([]domain.SourceFailure, 0)

	// Concatenação em ordem fixa de origem para manter a entrada da
	// deduplicação determinística
	for _, kind := range kinds {
		for _, origin := range fetchOrder {
			for _, result := range results {
				if result.kind != kind || result.origin != origin {
					continue
				}

				if result.err != nil {
					logrus.WithError(result.err).WithFields(logrus.Fields{
						"origin":     result.origin,
						"event_kind": result.kind,
					}).Warn("Origem indisponível, seguindo com zero eventos")

					failures = append(failures, domain.SourceFailure{
						SchemaOrigin: result.origin,
						EventKind:    result.kind,
						Reason:       result.err.Error(),
					})
					continue
				}

				eventsByKind[kind] = append(eventsByKind[kind], result.events...)
			}
		}
	}

	return eventsByKind, failures
}

// buildEmployeeIndex coleta ids e nomes distintos de todos os eventos e faz
// uma única busca em lote no diretório, independente do volume de eventos.
func (s *Service) buildEmployeeIndex(ctx context.Context, eventsByKind map[domain.EventKind][]domain.RawEvent) (*attributing.EmployeeIndex, *domain.SourceFailure) {
	all := make([]domain.RawEvent, 0)
	for _, events := range eventsByKind {
		all = append(all, events...)
	}

	ids, names := attributing.CollectLookupKeys(all)
	if len(ids) == 0 && len(names) == 0 {
		return attributing.NewEmployeeIndex(nil), nil
	}

	employees, err := s.directory.FindEmployees(ctx, ids, names)
	if err != nil {
		logrus.WithError(err).Error("Erro na busca em lote de funcionários")
		return attributing.NewEmployeeIndex(nil), &domain.SourceFailure{
			SchemaOrigin: domain.OriginCurrent,
			EventKind:    "",
			Reason:       "employee lookup: " + err.Error(),
		}
	}

	index := attributing.NewEmployeeIndex(employees)
	logrus.WithFields(logrus.Fields{
		"lookup_ids":   len(ids),
		"lookup_names": len(names),
		"employees":    index.Size(),
	}).Debug("Índice de funcionários montado a partir da busca em lote")

	return index, nil
}

// canonicalize transforma eventos brutos deduplicados em eventos canônicos:
// resolve atribuição e converte o valor para a moeda de relatório.
func (s *Service) canonicalize(events []domain.RawEvent, index *attributing.EmployeeIndex, diagnostics *domain.ReportDiagnostics) []domain.CanonicalEvent {
	canonical := make([]domain.CanonicalEvent, 0, len(events))

	for _, event := range events {
		employeeID, departmentID := attributing.Resolve(event, index)
		if employeeID == nil {
			diagnostics.UnattributedEvents++
			metrics.UnattributedEvents.Inc()
		}

		amount, known := s.normalizer.Convert(event)
		if !known {
			diagnostics.UnknownCurrencies++
		}

		canonical = append(canonical, domain.CanonicalEvent{
			CanonicalKey:              event.CanonicalKey(),
			EventKind:                 event.EventKind,
			OccurredOn:                event.OccurredOn,
			AmountInReportingCurrency: amount,
			AttributedEmployeeID:      employeeID,
			AttributedDepartmentID:    departmentID,
		})
	}

	return canonical
}

// meetingActivity conta os marcos de reunião que caem no mês selecionado. Os
// marcos não têm valor monetário nem linha por departamento; o painel os
// exibe como volume de atividade ao lado dos valores agregados.
func meetingActivity(eventsByKind map[domain.EventKind][]domain.RawEvent, windows []domain.ReportingWindow) domain.MeetingActivity {
	activity := domain.MeetingActivity{}

	var selected *domain.ReportingWindow
	for i := range windows {
		if windows[i].Name == domain.WindowSelectedMonth {
			selected = &windows[i]
			break
		}
	}
	if selected == nil {
		return activity
	}

	for _, kind := range domain.MilestoneKinds {
		for _, event := range deduplicating.Dedupe(eventsByKind[kind]) {
			if !selected.Contains(event.OccurredOn) {
				continue
			}

			switch kind {
			case domain.EventSchedulingMilestone:
				activity.Scheduled++
			case domain.EventHandlingMilestone:
				activity.Handled++
			}
		}
	}

	return activity
}

// assembleReport junta as agregações dos dois tipos de evento lado a lado e
// aplica meta, percentual e teto de exibição. Esta é a única etapa que
// combina tipos de evento diferentes em uma mesma resposta.
func assembleReport(
	referenceDate time.Time,
	month time.Month,
	year int,
	windows []domain.ReportingWindow,
	departments []*domain.Department,
	resultsByKind map[domain.EventKind]aggregating.Result,
	meetings domain.MeetingActivity,
	failures []domain.SourceFailure,
	diagnostics domain.ReportDiagnostics,
) *domain.Report {
	departmentsByID := make(map[int64]*domain.Department, len(departments))
	targetTotal := 0.0
	for _, department := range departments {
		departmentsByID[department.ID] = department
		if department.IsTracked {
			targetTotal += department.TargetAmount
		}
	}

	report := &domain.Report{
		ReferenceDate: referenceDate,
		Month:         int(month),
		Year:          year,
		Windows:       make(map[domain.WindowName]*domain.WindowReport, len(windows)),
		Partial:       len(failures) > 0,
		FailedSources: failures,
		Meetings:      meetings,
		Diagnostics:   diagnostics,
		GeneratedAt:   time.Now(),
	}

	signed := resultsByKind[domain.EventAgreementSigned]
	invoiced := resultsByKind[domain.EventPaymentInvoiced]

	for _, window := range windows {
		windowReport := &domain.WindowReport{
			Start: window.Start,
			End:   window.End,
			Rows:  make(map[string]*domain.RowReport),
		}

		rowKeys := make(map[string]bool)
		for key := range signed[window.Name] {
			rowKeys[key] = true
		}
		for key := range invoiced[window.Name] {
			rowKeys[key] = true
		}

		for key := range rowKeys {
			row := &domain.RowReport{}

			// A meta só é significativa na janela do mês selecionado
			expected := 0.0
			if window.Name == domain.WindowSelectedMonth {
				switch key {
				case domain.RowTotal:
					expected = targetTotal
				default:
					if department := departmentForRowKey(key, departments); department != nil {
						row.DepartmentID = &department.ID
						row.DepartmentName = department.Name
						expected = department.TargetAmount
					}
				}
			} else if department := departmentForRowKey(key, departments); department != nil {
				row.DepartmentID = &department.ID
				row.DepartmentName = department.Name
			}

			row.Signed = buildCell(signed[window.Name][key], expected)
			row.Invoiced = buildCell(invoiced[window.Name][key], expected)

			windowReport.Rows[key] = row
		}

		report.Windows[window.Name] = windowReport
	}

	return report
}

func departmentForRowKey(key string, departments []*domain.Department) *domain.Department {
	for _, department := range departments {
		if domain.DepartmentRowKey(department.ID) == key {
			return department
		}
	}
	return nil
}

// buildCell fecha uma célula para exibição: teto no valor, percentual sobre
// a meta (0 quando não há meta, para não dividir por zero) e indicador de
// meta batida. O percentual é calculado sobre o valor sem arredondamento.
func buildCell(cell *domain.AggregationCell, expected float64) domain.CellReport {
	if cell == nil {
		cell = &domain.AggregationCell{}
	}

	percent := 0.0
	if expected > 0 {
		percent = utils.RoundWithTwoDecimalPlace(cell.Amount / expected)
	}

	return domain.CellReport{
		Count:           cell.Count,
		Amount:          utils.CeilForDisplay(cell.Amount),
		Expected:        expected,
		PercentComplete: percent,
		IsAboveTarget:   expected > 0 && cell.Amount >= expected,
	}
}
