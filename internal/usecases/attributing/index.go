package attributing

import "github.com/vfg2006/performance-dashboard-api/internal/domain"

// EmployeeIndex é um snapshot imutável do diretório de funcionários,
// indexado por id e por nome normalizado. Construído uma vez por execução a
// partir da busca em lote no diretório.
type EmployeeIndex struct {
	byID   map[int64]*domain.Employee
	byName map[string]*domain.Employee
}

// NewEmployeeIndex constrói o índice. Em caso de nomes normalizados
// idênticos, o primeiro funcionário da lista vence, mantendo a resolução
// determinística.
func NewEmployeeIndex(employees []*domain.Employee) *EmployeeIndex {
	index := &EmployeeIndex{
		byID:   make(map[int64]*domain.Employee, len(employees)),
		byName: make(map[string]*domain.Employee, len(employees)),
	}

	for _, employee := range employees {
		if employee == nil {
			continue
		}

		if _, exists := index.byID[employee.ID]; !exists {
			index.byID[employee.ID] = employee
		}

		normalized := domain.NormalizeName(employee.DisplayName)
		if normalized == "" {
			continue
		}
		if _, exists := index.byName[normalized]; !exists {
			index.byName[normalized] = employee
		}
	}

	return index
}

// ByID busca um funcionário pelo id. Retorna nil quando desconhecido.
func (i *EmployeeIndex) ByID(id int64) *domain.Employee {
	return i.byID[id]
}

// ByName busca um funcionário pelo nome de exibição, com comparação
// normalizada por caixa e espaços.
func (i *EmployeeIndex) ByName(name string) *domain.Employee {
	return i.byName[domain.NormalizeName(name)]
}

// Size retorna quantos funcionários o índice conhece
func (i *EmployeeIndex) Size() int {
	return len(i.byID)
}
