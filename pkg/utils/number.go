package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// CeilForDisplay arredonda um valor monetário para cima, para exibição no
// painel. A acumulação interna fica sem arredondamento; o teto só entra na
// montagem final do relatório.
func CeilForDisplay(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Ceil(f)
}
