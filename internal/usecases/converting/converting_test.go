package converting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

type staticRates struct {
	rates     map[string]float64
	reporting string
}

func (s staticRates) Rate(code string) (float64, bool) {
	rate, ok := s.rates[code]
	return rate, ok
}

func (s staticRates) ReportingCurrency() string {
	return s.reporting
}

func TestToReportingCurrency(t *testing.T) {
	normalizer := NewNormalizer(staticRates{
		reporting: "BRL",
		rates:     map[string]float64{"USD": 5.2, "EUR": 5.6},
	})

	tests := []struct {
		name       string
		amount     float64
		vat        float64
		code       string
		wantAmount float64
		wantKnown  bool
	}{
		{
			name:       "Moeda de relatório passa sem conversão",
			amount:     100,
			code:       "BRL",
			wantAmount: 100,
			wantKnown:  true,
		},
		{
			name:       "Moeda ausente assume moeda de relatório",
			amount:     250,
			code:       "",
			wantAmount: 250,
			wantKnown:  true,
		},
		{
			name:       "Moeda conhecida converte pela taxa",
			amount:     1000,
			code:       "USD",
			wantAmount: 5200,
			wantKnown:  true,
		},
		{
			name:       "IVA entra na base antes da conversão",
			amount:     1000,
			vat:        100,
			code:       "USD",
			wantAmount: 5720,
			wantKnown:  true,
		},
		{
			name:       "Moeda desconhecida conta com taxa 1, nunca descarta",
			amount:     300,
			code:       "XYZ",
			wantAmount: 300,
			wantKnown:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := normalizer.ToReportingCurrency(tt.amount, tt.vat, tt.code)
			assert.InDelta(t, tt.wantAmount, got, 0.0001)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestConvertEvent(t *testing.T) {
	normalizer := NewNormalizer(staticRates{
		reporting: "BRL",
		rates:     map[string]float64{"USD": 5.0},
	})

	event := domain.RawEvent{
		Amount:       1000,
		VATAmount:    50,
		CurrencyCode: "USD",
	}

	got, known := normalizer.Convert(event)
	assert.True(t, known)
	assert.InDelta(t, 5250.0, got, 0.0001)
}
