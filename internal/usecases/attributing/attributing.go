// Package attributing determina a qual funcionário (e portanto a qual
// departamento) um evento canônico pertence, através de uma cadeia ordenada
// de fallbacks. As origens não são consistentes sobre guardar o responsável
// como chave estrangeira ou como nome desnormalizado, e o campo autoritativo
// varia por processo de negócio: a ordem explícita abaixo existe para que o
// resultado seja reprodutível e testável.
package attributing

import (
	"strconv"

	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// ResolverStep tenta resolver um funcionário para o evento. Retorna nil
// quando o passo não se aplica ou não encontra ninguém conhecido.
type ResolverStep func(event domain.RawEvent, index *EmployeeIndex) *domain.Employee

// fieldOrder define, por tipo de evento, a prioridade dos campos do assunto
// inspecionados quando não há referência direta ao funcionário. Reordenar um
// fallback é uma mudança de uma linha aqui.
var fieldOrder = map[domain.EventKind][]string{
	domain.EventAgreementSigned:     {"creator", "closer", "meeting_manager"},
	domain.EventPaymentInvoiced:     {"collector", "creator"},
	domain.EventHandlingMilestone:   {"handler", "creator"},
	domain.EventSchedulingMilestone: {"scheduler", "creator"},
}

// ChainFor monta a cadeia de resolução de um tipo de evento: primeiro a
// referência direta, depois os campos do assunto na ordem de prioridade.
func ChainFor(kind domain.EventKind) []ResolverStep {
	steps := []ResolverStep{explicitAttributeeStep}
	for _, field := range fieldOrder[kind] {
		steps = append(steps, subjectFieldStep(field))
	}
	return steps
}

// Resolve executa a cadeia do tipo do evento e devolve (funcionário,
// departamento). (nil, nil) significa "sem atribuição": o evento fica fora
// dos rollups por departamento, mas não é um erro. Funcionário sem
// departamento também conta como sem atribuição para os rollups.
func Resolve(event domain.RawEvent, index *EmployeeIndex) (employeeID, departmentID *int64) {
	for _, step := range ChainFor(event.EventKind) {
		employee := step(event, index)
		if employee == nil {
			continue
		}

		id := employee.ID
		return &id, employee.DepartmentID
	}

	return nil, nil
}

// explicitAttributeeStep resolve a referência numérica direta ao
// funcionário, quando o registro a carrega. Sempre vence os campos do
// assunto.
func explicitAttributeeStep(event domain.RawEvent, index *EmployeeIndex) *domain.Employee {
	if event.ExplicitAttributeeID == nil {
		return nil
	}

	return index.ByID(*event.ExplicitAttributeeID)
}

// subjectFieldStep resolve um campo do assunto: valor numérico é tratado
// como id de funcionário, qualquer outra coisa como nome de exibição com
// comparação normalizada.
func subjectFieldStep(fieldName string) ResolverStep {
	return func(event domain.RawEvent, index *EmployeeIndex) *domain.Employee {
		for _, field := range event.SubjectAttributeFields {
			if field.Name != fieldName || field.Value == "" {
				continue
			}

			if id, err := strconv.ParseInt(field.Value, 10, 64); err == nil {
				return index.ByID(id)
			}

			return index.ByName(field.Value)
		}

		return nil
	}
}

// CollectLookupKeys percorre os eventos e separa os valores identificadores
// em ids e nomes distintos, para que o diretório seja consultado em uma
// única chamada em lote por lista, independente do volume de eventos.
func CollectLookupKeys(events []domain.RawEvent) (ids []int64, names []string) {
	seenIDs := make(map[int64]bool)
	seenNames := make(map[string]bool)

	for _, event := range events {
		if event.ExplicitAttributeeID != nil && !seenIDs[*event.ExplicitAttributeeID] {
			seenIDs[*event.ExplicitAttributeeID] = true
			ids = append(ids, *event.ExplicitAttributeeID)
		}

		for _, field := range event.SubjectAttributeFields {
			if field.Value == "" {
				continue
			}

			if id, err := strconv.ParseInt(field.Value, 10, 64); err == nil {
				if !seenIDs[id] {
					seenIDs[id] = true
					ids = append(ids, id)
				}
				continue
			}

			normalized := domain.NormalizeName(field.Value)
			if !seenNames[normalized] {
				seenNames[normalized] = true
				names = append(names, field.Value)
			}
		}
	}

	return ids, names
}
