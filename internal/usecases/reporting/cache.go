package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/performance-dashboard-api/internal/domain"
	"github.com/vfg2006/performance-dashboard-api/pkg/metrics"
)

type cacheEntry struct {
	report    *domain.Report
	expiresAt time.Time
}

// CachedReporter decora um Reporter com um cache em memória por
// (data de referência, mês, ano). Apenas relatórios completos entram no
// cache: um resultado parcial não deve mascarar a origem voltando ao ar.
type CachedReporter struct {
	inner Reporter
	ttl   time.Duration

	mutex   sync.Mutex
	entries map[string]cacheEntry
}

func NewCachedReporter(inner Reporter, ttl time.Duration) Reporter {
	if ttl <= 0 {
		return inner
	}

	return &CachedReporter{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(referenceDate time.Time, month time.Month, year int) string {
	return fmt.Sprintf("%s|%d|%d", referenceDate.Format("2006-01-02"), month, year)
}

func (c *CachedReporter) BuildReport(ctx context.Context, referenceDate time.Time, month time.Month, year int) (*domain.Report, error) {
	key := cacheKey(referenceDate, month, year)

	c.mutex.Lock()
	entry, found := c.entries[key]
	if found && time.Now().Before(entry.expiresAt) {
		c.mutex.Unlock()
		metrics.ReportCacheEvents.WithLabelValues("hit").Inc()
		return entry.report, nil
	}
	if found {
		delete(c.entries, key)
	}
	c.mutex.Unlock()

	metrics.ReportCacheEvents.WithLabelValues("miss").Inc()

	report, err := c.inner.BuildReport(ctx, referenceDate, month, year)
	if err != nil {
		return nil, err
	}

	if !report.Partial {
		c.mutex.Lock()
		c.entries[key] = cacheEntry{report: report, expiresAt: time.Now().Add(c.ttl)}
		c.mutex.Unlock()
	}

	return report, nil
}

// BuildReportForDepartment não passa pelo cache: o filtro por departamento
// altera as linhas do relatório compartilhado, então cada chamada parte de
// uma montagem própria.
func (c *CachedReporter) BuildReportForDepartment(ctx context.Context, referenceDate time.Time, month time.Month, year int, departmentID int64) (*domain.Report, error) {
	return c.inner.BuildReportForDepartment(ctx, referenceDate, month, year, departmentID)
}

func (c *CachedReporter) BuildReportForEmployee(ctx context.Context, referenceDate time.Time, month time.Month, year int, employeeID int64) (*domain.Report, error) {
	return c.inner.BuildReportForEmployee(ctx, referenceDate, month, year, employeeID)
}
