package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

type countingReporter struct {
	calls   int
	partial bool
}

func (c *countingReporter) BuildReport(_ context.Context, referenceDate time.Time, month time.Month, year int) (*domain.Report, error) {
	c.calls++
	return &domain.Report{
		ReferenceDate: referenceDate,
		Month:         int(month),
		Year:          year,
		Partial:       c.partial,
		GeneratedAt:   time.Now(),
	}, nil
}

func (c *countingReporter) BuildReportForDepartment(ctx context.Context, referenceDate time.Time, month time.Month, year int, _ int64) (*domain.Report, error) {
	return c.BuildReport(ctx, referenceDate, month, year)
}

func (c *countingReporter) BuildReportForEmployee(ctx context.Context, referenceDate time.Time, month time.Month, year int, _ int64) (*domain.Report, error) {
	return c.BuildReport(ctx, referenceDate, month, year)
}

func TestCachedReporter(t *testing.T) {
	referenceDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("segunda chamada com os mesmos parâmetros sai do cache", func(t *testing.T) {
		inner := &countingReporter{}
		cached := NewCachedReporter(inner, time.Minute)

		first, err := cached.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)

		second, err := cached.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
		assert.Same(t, first, second)
	})

	t.Run("parâmetros diferentes não compartilham entrada", func(t *testing.T) {
		inner := &countingReporter{}
		cached := NewCachedReporter(inner, time.Minute)

		_, err := cached.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)

		_, err = cached.BuildReport(context.Background(), referenceDate, time.February, 2024)
		assert.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("relatório parcial nunca entra no cache", func(t *testing.T) {
		inner := &countingReporter{partial: true}
		cached := NewCachedReporter(inner, time.Minute)

		_, err := cached.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)

		_, err = cached.BuildReport(context.Background(), referenceDate, time.March, 2024)
		assert.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("ttl zero desliga o decorador", func(t *testing.T) {
		inner := &countingReporter{}
		cached := NewCachedReporter(inner, 0)

		assert.Same(t, Reporter(inner), cached)
	})

	t.Run("relatório por departamento não passa pelo cache", func(t *testing.T) {
		inner := &countingReporter{}
		cached := NewCachedReporter(inner, time.Minute)

		_, err := cached.BuildReportForDepartment(context.Background(), referenceDate, time.March, 2024, 3)
		assert.NoError(t, err)

		_, err = cached.BuildReportForDepartment(context.Background(), referenceDate, time.March, 2024, 3)
		assert.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})
}
