package reporting

import "errors"

// Erros específicos para o contexto de relatórios
var (
	// ErrInvalidReferenceParameters é o único erro fatal da fachada:
	// parâmetros de referência inválidos são rejeitados antes de qualquer
	// busca. Todo o resto vira resultado parcial, nunca erro.
	ErrInvalidReferenceParameters = errors.New("invalid reference parameters")

	// ErrDepartmentRequired indica um pedido de relatório por departamento
	// sem departamento resolvido para o usuário atual
	ErrDepartmentRequired = errors.New("department is required")
)
