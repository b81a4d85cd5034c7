package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func canonical(day time.Time, departmentID *int64, amount float64) domain.CanonicalEvent {
	return domain.CanonicalEvent{
		CanonicalKey:              "current:" + day.Format(time.DateOnly),
		EventKind:                 domain.EventAgreementSigned,
		OccurredOn:                day,
		AmountInReportingCurrency: amount,
		AttributedDepartmentID:    departmentID,
	}
}

func testDepartments() []*domain.Department {
	return []*domain.Department{
		{ID: 1, Name: "Comercial", TargetAmount: 10000, IsTracked: true},
		{ID: 2, Name: "Pós-venda", TargetAmount: 5000, IsTracked: true},
		{ID: 3, Name: "Interno", IsTracked: false},
	}
}

func assertTotalConsistency(t *testing.T, result Result, windows []domain.ReportingWindow, departments []*domain.Department) {
	t.Helper()

	for _, window := range windows {
		rows := result[window.Name]
		require.NotNil(t, rows)

		total := rows[domain.RowTotal]
		require.NotNil(t, total)

		sumCount := 0
		sumAmount := 0.0
		for _, department := range departments {
			if !department.IsTracked {
				continue
			}
			cell := rows[domain.DepartmentRowKey(department.ID)]
			require.NotNil(t, cell)
			sumCount += cell.Count
			sumAmount += cell.Amount
		}

		assert.Equal(t, sumCount, total.Count, "janela %s", window.Name)
		assert.InDelta(t, sumAmount, total.Amount, 0.0001, "janela %s", window.Name)
	}
}

func TestAggregateEmptyEvents(t *testing.T) {
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	windows := domain.ComputeWindows(ref, time.March, 2024)
	departments := testDepartments()

	result := Aggregate(nil, windows, departments)

	// Todas as células existem e estão zeradas, inclusive o total
	for _, window := range windows {
		rows := result[window.Name]
		assert.Equal(t, 0, rows[domain.RowTotal].Count)
		assert.Equal(t, 0.0, rows[domain.RowTotal].Amount)
		for _, department := range departments {
			if department.IsTracked {
				cell := rows[domain.DepartmentRowKey(department.ID)]
				require.NotNil(t, cell)
				assert.Equal(t, 0, cell.Count)
			}
		}
	}

	assertTotalConsistency(t, result, windows, departments)
}

func TestAggregateWindowOverlap(t *testing.T) {
	// Evento datado "hoje", com hoje dentro do mês selecionado e dos últimos
	// 30 dias: precisa aparecer nas três janelas com o mesmo valor.
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	windows := domain.ComputeWindows(ref, time.March, 2024)
	departments := testDepartments()

	events := []domain.CanonicalEvent{canonical(ref, int64Ptr(1), 1500)}

	result := Aggregate(events, windows, departments)

	for _, name := range []domain.WindowName{domain.WindowToday, domain.WindowLast30Days, domain.WindowSelectedMonth} {
		cell := result[name][domain.DepartmentRowKey(1)]
		require.NotNil(t, cell, "janela %s", name)
		assert.Equal(t, 1, cell.Count, "janela %s", name)
		assert.InDelta(t, 1500.0, cell.Amount, 0.0001, "janela %s", name)
	}

	assertTotalConsistency(t, result, windows, departments)
}

func TestAggregateBoundaryInclusive(t *testing.T) {
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	windows := domain.ComputeWindows(ref, time.March, 2024)
	departments := testDepartments()

	firstOfMonth := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	thirtyDaysAgo := ref.AddDate(0, 0, -29)

	events := []domain.CanonicalEvent{
		canonical(firstOfMonth, int64Ptr(1), 100),
		canonical(lastOfMonth, int64Ptr(1), 200),
		canonical(thirtyDaysAgo, int64Ptr(2), 300),
	}

	result := Aggregate(events, windows, departments)

	month := result[domain.WindowSelectedMonth]
	assert.Equal(t, 2, month[domain.DepartmentRowKey(1)].Count)

	last30 := result[domain.WindowLast30Days]
	assert.Equal(t, 1, last30[domain.DepartmentRowKey(2)].Count)

	// Nada disso é "hoje"
	today := result[domain.WindowToday]
	assert.Equal(t, 0, today[domain.RowTotal].Count)

	assertTotalConsistency(t, result, windows, departments)
}

func TestAggregateGeneralAndTotalRows(t *testing.T) {
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	windows := domain.ComputeWindows(ref, time.March, 2024)
	departments := testDepartments()

	events := []domain.CanonicalEvent{
		canonical(ref, int64Ptr(1), 1000),
		canonical(ref, int64Ptr(2), 500),
		canonical(ref, nil, 250),        // sem atribuição: só na general
		canonical(ref, int64Ptr(3), 80), // departamento não rastreado: só na general
	}

	result := Aggregate(events, windows, departments)

	today := result[domain.WindowToday]

	general := today[domain.RowGeneral]
	require.NotNil(t, general)
	assert.Equal(t, 4, general.Count)
	assert.InDelta(t, 1830.0, general.Amount, 0.0001)

	// Total soma apenas departamentos rastreados, nunca a general
	total := today[domain.RowTotal]
	assert.Equal(t, 2, total.Count)
	assert.InDelta(t, 1500.0, total.Amount, 0.0001)

	// O mês selecionado não tem linha general
	month := result[domain.WindowSelectedMonth]
	_, hasGeneral := month[domain.RowGeneral]
	assert.False(t, hasGeneral)

	assertTotalConsistency(t, result, windows, departments)
}
