package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")

	content := []byte("reporting_currency: BRL\nrates:\n  USD: 5.2\n  EUR: 5.6\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	table, err := NewTable(path, "BRL", nil)
	require.NoError(t, err)

	assert.Equal(t, "BRL", table.ReportingCurrency())

	rate, known := table.Rate("USD")
	assert.True(t, known)
	assert.Equal(t, 5.2, rate)

	// Moeda de relatório sempre taxa 1
	rate, known = table.Rate("BRL")
	assert.True(t, known)
	assert.Equal(t, 1.0, rate)

	_, known = table.Rate("XYZ")
	assert.False(t, known)
}

func TestNewTableMissingFileUsesFallback(t *testing.T) {
	table, err := NewTable(filepath.Join(t.TempDir(), "nao-existe.yaml"), "BRL", map[string]float64{"USD": 5.0})
	require.NoError(t, err)

	rate, known := table.Rate("USD")
	assert.True(t, known)
	assert.Equal(t, 5.0, rate)
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")

	require.NoError(t, os.WriteFile(path, []byte("rates:\n  USD: 5.0\n"), 0o600))

	table, err := NewTable(path, "BRL", nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("rates:\n  USD: 5.5\n"), 0o600))
	require.NoError(t, table.Reload())

	rate, _ := table.Rate("USD")
	assert.Equal(t, 5.5, rate)
}
