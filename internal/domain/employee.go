package domain

import "strings"

// Employee é um funcionário resolvido a partir do diretório da loja atual
type Employee struct {
	ID           int64  `json:"id"`
	DisplayName  string `json:"display_name"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

// Department participa da agregação apenas quando IsTracked é verdadeiro.
// TargetAmount é a meta configurada para o mês de referência.
type Department struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	IsTracked    bool    `json:"is_tracked"`
}

// NormalizeName normaliza um nome de exibição para comparação: minúsculas e
// espaços internos/externos colapsados. As origens divergem em caixa e
// espaçamento para o mesmo funcionário.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
