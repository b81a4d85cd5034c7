package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

type warmupReporter struct {
	mutex   sync.Mutex
	calls   int
	partial bool
	block   chan struct{}
}

func (r *warmupReporter) BuildReport(_ context.Context, referenceDate time.Time, month time.Month, year int) (*domain.Report, error) {
	if r.block != nil {
		<-r.block
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls++

	return &domain.Report{
		ReferenceDate: referenceDate,
		Month:         int(month),
		Year:          year,
		Partial:       r.partial,
	}, nil
}

func (r *warmupReporter) BuildReportForDepartment(ctx context.Context, referenceDate time.Time, month time.Month, year int, _ int64) (*domain.Report, error) {
	return r.BuildReport(ctx, referenceDate, month, year)
}

func (r *warmupReporter) BuildReportForEmployee(ctx context.Context, referenceDate time.Time, month time.Month, year int, _ int64) (*domain.Report, error) {
	return r.BuildReport(ctx, referenceDate, month, year)
}

func (r *warmupReporter) callCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.calls
}

func TestReportWarmupService(t *testing.T) {
	t.Run("aquecimento monta o relatório do mês corrente", func(t *testing.T) {
		reporter := &warmupReporter{}
		service := &ReportWarmupService{
			config:   ReportWarmupConfig{Enabled: true},
			reporter: reporter,
		}

		service.warmupCurrentMonth(context.Background())

		assert.Equal(t, 1, reporter.callCount())
		assert.False(t, service.lastRunCompletedAt.IsZero())
	})

	t.Run("execução concorrente é ignorada", func(t *testing.T) {
		block := make(chan struct{})
		reporter := &warmupReporter{block: block}
		service := &ReportWarmupService{
			config:   ReportWarmupConfig{Enabled: true},
			reporter: reporter,
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.warmupCurrentMonth(context.Background())
		}()

		// Esperar a primeira execução marcar o início
		assert.Eventually(t, func() bool {
			service.warmupMutex.Lock()
			defer service.warmupMutex.Unlock()
			return service.warmupRunning
		}, time.Second, 10*time.Millisecond)

		// A segunda execução deve retornar sem montar relatório
		service.warmupCurrentMonth(context.Background())

		close(block)
		wg.Wait()

		assert.Equal(t, 1, reporter.callCount())
	})

	t.Run("status expõe configuração e últimos horários", func(t *testing.T) {
		service := &ReportWarmupService{
			config: ReportWarmupConfig{CronSchedule: "*/15 * * * *", Enabled: true},
		}

		status := service.GetStatus()
		assert.Equal(t, true, status["warmup_enabled"])
		assert.Equal(t, "*/15 * * * *", status["warmup_cron"])
	})
}
