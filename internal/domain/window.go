package domain

import "time"

// ReportingWindow é um intervalo de datas nomeado sobre o qual os eventos
// são agregados. Janelas se sobrepõem por definição (hoje ⊂ últimos 30 dias)
// e um evento pode cair em mais de uma janela ao mesmo tempo.
type ReportingWindow struct {
	Name       WindowName
	Start      time.Time
	End        time.Time
	HasGeneral bool
}

type WindowName string

const (
	WindowToday         WindowName = "today"
	WindowLast30Days    WindowName = "last30days"
	WindowSelectedMonth WindowName = "selected_month"
)

// Contains verifica se a data cai dentro da janela. Limites inclusivos nas
// duas pontas. A comparação é por data civil, cada lado no próprio fuso: as
// origens devolvem datas em UTC enquanto as janelas são calculadas no fuso da
// data de referência, e comparar instantes entre fusos deslocaria o limite em
// um dia.
func (w ReportingWindow) Contains(date time.Time) bool {
	d := civilDate(date)
	return !d.Before(civilDate(w.Start)) && !d.After(civilDate(w.End))
}

// civilDate projeta o instante na data civil do próprio fuso, normalizada em
// UTC para que as comparações de ordem fiquem entre datas e não entre
// instantes.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeWindows calcula as três janelas de relatório a partir da data de
// referência e do mês/ano selecionados pelo chamador.
func ComputeWindows(referenceDate time.Time, month time.Month, year int) []ReportingWindow {
	ref := truncateToDay(referenceDate)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, referenceDate.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	return []ReportingWindow{
		{
			Name:       WindowToday,
			Start:      ref,
			End:        ref,
			HasGeneral: true,
		},
		{
			Name:       WindowLast30Days,
			Start:      ref.AddDate(0, 0, -29),
			End:        ref,
			HasGeneral: true,
		},
		{
			// O mês selecionado não tem linha "general": a tabela mensal do
			// painel compara apenas departamentos contra meta.
			Name:       WindowSelectedMonth,
			Start:      monthStart,
			End:        monthEnd,
			HasGeneral: false,
		},
	}
}

// DateRange é um intervalo de datas inclusivo nas duas pontas
type DateRange struct {
	Start time.Time
	End   time.Time
}

// BoundingRange retorna o intervalo que cobre todas as janelas, usado para
// buscar eventos das origens em uma única consulta por (tipo, origem).
func BoundingRange(windows []ReportingWindow) DateRange {
	if len(windows) == 0 {
		return DateRange{}
	}

	bounds := DateRange{Start: windows[0].Start, End: windows[0].End}
	for _, w := range windows[1:] {
		if w.Start.Before(bounds.Start) {
			bounds.Start = w.Start
		}
		if w.End.After(bounds.End) {
			bounds.End = w.End
		}
	}

	return bounds
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
