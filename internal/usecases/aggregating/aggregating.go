// Package aggregating distribui eventos canônicos nas janelas de relatório
// e acumula contagens e valores por departamento e por janela.
package aggregating

import (
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// Result é o acumulado de uma execução: janela -> linha -> célula. As linhas
// são os departamentos rastreados mais "general" e "total".
type Result map[domain.WindowName]map[string]*domain.AggregationCell

// Aggregate percorre os eventos uma vez e os soma em cada janela cujo
// intervalo contém a data do evento. Um evento pode cair em várias janelas
// ao mesmo tempo: hoje está contido nos últimos 30 dias e normalmente também
// no mês selecionado.
//
// A linha "general" (somente nas janelas que a definem) acumula todos os
// eventos, inclusive os sem atribuição. A linha "total" é sempre a soma
// explícita das células dos departamentos rastreados daquela janela — nunca
// derivada da "general", que agregaria os mesmos eventos e dobraria a conta.
// A acumulação usa aritmética sem arredondamento; o teto para exibição é
// aplicado apenas na montagem do relatório.
func Aggregate(events []domain.CanonicalEvent, windows []domain.ReportingWindow, departments []*domain.Department) Result {
	tracked := make(map[int64]bool, len(departments))
	for _, department := range departments {
		if department != nil && department.IsTracked {
			tracked[department.ID] = true
		}
	}

	result := make(Result, len(windows))
	for _, window := range windows {
		rows := make(map[string]*domain.AggregationCell)
		for id := range tracked {
			rows[domain.DepartmentRowKey(id)] = &domain.AggregationCell{}
		}
		if window.HasGeneral {
			rows[domain.RowGeneral] = &domain.AggregationCell{}
		}
		rows[domain.RowTotal] = &domain.AggregationCell{}
		result[window.Name] = rows
	}

	for _, event := range events {
		for _, window := range windows {
			if !window.Contains(event.OccurredOn) {
				continue
			}

			rows := result[window.Name]

			if general, ok := rows[domain.RowGeneral]; ok {
				general.Count++
				general.Amount += event.AmountInReportingCurrency
			}

			if event.AttributedDepartmentID == nil || !tracked[*event.AttributedDepartmentID] {
				continue
			}

			cell := rows[domain.DepartmentRowKey(*event.AttributedDepartmentID)]
			cell.Count++
			cell.Amount += event.AmountInReportingCurrency
		}
	}

	// Total por soma explícita sobre os departamentos rastreados, para que o
	// arredondamento final fique consistente entre linha e total.
	for _, window := range windows {
		rows := result[window.Name]
		total := rows[domain.RowTotal]
		for id := range tracked {
			cell := rows[domain.DepartmentRowKey(id)]
			total.Count += cell.Count
			total.Amount += cell.Amount
		}
	}

	return result
}
