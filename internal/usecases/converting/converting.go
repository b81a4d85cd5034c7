// Package converting normaliza valores monetários para a moeda única de
// relatório.
package converting

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// RateSource fornece a taxa de conversão de uma moeda para a moeda de
// relatório. A moeda de relatório tem taxa fixa 1.
type RateSource interface {
	Rate(currencyCode string) (float64, bool)
	ReportingCurrency() string
}

// Normalizer converte valores de evento usando uma tabela de taxas
type Normalizer struct {
	rates RateSource
}

func NewNormalizer(rates RateSource) *Normalizer {
	return &Normalizer{rates: rates}
}

// ToReportingCurrency converte o valor para a moeda de relatório. O IVA,
// quando presente como campo separado, entra na base antes da conversão.
//
// Moeda desconhecida ou ausente usa taxa 1 em vez de falhar: um evento
// monetário com moeda irresolúvel ainda precisa ser contado, só não
// convertido — descartá-lo sumiria com receita do painel. O retorno booleano
// indica se a moeda era conhecida, para o chamador acumular diagnóstico.
func (n *Normalizer) ToReportingCurrency(amount, vat float64, currencyCode string) (float64, bool) {
	base := amount + vat

	if currencyCode == "" || currencyCode == n.rates.ReportingCurrency() {
		return base, true
	}

	rate, known := n.rates.Rate(currencyCode)
	if !known {
		logrus.WithFields(logrus.Fields{
			"currency_code": currencyCode,
		}).Warn("Moeda desconhecida, usando taxa 1")
		return base, false
	}

	return base * rate, true
}

// Convert aplica a conversão a um evento bruto e devolve o valor pronto para
// entrar no CanonicalEvent.
func (n *Normalizer) Convert(event domain.RawEvent) (float64, bool) {
	return n.ToReportingCurrency(event.Amount, event.VATAmount, event.CurrencyCode)
}
