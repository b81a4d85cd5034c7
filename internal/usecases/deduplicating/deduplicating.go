// Package deduplicating colapsa registros brutos que representam o mesmo
// fato de negócio em uma única entrada por chave canônica.
package deduplicating

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// Dedupe resolve chaves canônicas duplicadas mantendo a primeira entrada
// vista (ordem estável de entrada) e descartando as demais. Deve ser chamado
// uma vez por tipo de evento. Eventos sem SubjectID são descartados: não há
// como deduplicar nem atribuir um evento sem assunto.
//
// A mesclagem de prioridade entre contrato, marco e campo de data de
// assinatura acontece antes, nos adaptadores de origem. Aqui só chegam
// duplicatas exatas de chave.
func Dedupe(events []domain.RawEvent) []domain.RawEvent {
	if len(events) == 0 {
		return []domain.RawEvent{}
	}

	seen := make(map[string]bool, len(events))
	result := make([]domain.RawEvent, 0, len(events))

	dropped := 0
	for _, event := range events {
		if event.SubjectID == "" {
			dropped++
			continue
		}

		key := event.CanonicalKey()
		if seen[key] {
			continue
		}

		seen[key] = true
		result = append(result, event)
	}

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped": dropped,
			"total":   len(events),
		}).Warn("Eventos sem assunto descartados na deduplicação")
	}

	return result
}
