package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindows(t *testing.T) {
	ref := time.Date(2024, 3, 15, 14, 32, 5, 0, time.UTC)

	windows := ComputeWindows(ref, time.February, 2024)
	require.Len(t, windows, 3)

	byName := make(map[WindowName]ReportingWindow)
	for _, w := range windows {
		byName[w.Name] = w
	}

	today := byName[WindowToday]
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), today.Start)
	assert.Equal(t, today.Start, today.End)
	assert.True(t, today.HasGeneral)

	last30 := byName[WindowLast30Days]
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), last30.Start)
	assert.Equal(t, today.End, last30.End)

	// O mês selecionado segue o mês/ano do chamador, não a data de referência
	month := byName[WindowSelectedMonth]
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), month.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), month.End)
	assert.False(t, month.HasGeneral)
}

func TestWindowContainsBoundaries(t *testing.T) {
	window := ReportingWindow{
		Name:  WindowSelectedMonth,
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	// Limites inclusivos nas duas pontas
	assert.True(t, window.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, window.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, window.Contains(time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWindowContainsAcrossTimezones(t *testing.T) {
	local := time.FixedZone("-03", -3*60*60)
	ref := time.Date(2024, 3, 15, 10, 0, 0, 0, local)

	windows := ComputeWindows(ref, time.March, 2024)
	byName := make(map[WindowName]ReportingWindow)
	for _, w := range windows {
		byName[w.Name] = w
	}

	// Evento datado de hoje em UTC cai na janela de hoje calculada no fuso
	// local; a comparação é entre datas civis, não entre instantes
	today := byName[WindowToday]
	assert.True(t, today.Contains(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, today.Contains(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)))
	assert.False(t, today.Contains(time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)))

	// Limites do mês continuam inclusivos com fusos misturados
	month := byName[WindowSelectedMonth]
	assert.True(t, month.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, month.Contains(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)))
	assert.False(t, month.Contains(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)))
}

func TestBoundingRange(t *testing.T) {
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	windows := ComputeWindows(ref, time.January, 2024)

	bounds := BoundingRange(windows)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bounds.Start)
	assert.Equal(t, ref, bounds.End)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "ana souza", NormalizeName("  ANA   Souza "))
	assert.Equal(t, "", NormalizeName("   "))
}
