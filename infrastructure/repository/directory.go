package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
)

// DirectoryRepository resolve funcionários e departamentos na loja atual.
// As buscas de funcionários são sempre em lote — uma chamada por lista de
// ids/nomes distintos — para que o número de idas ao banco não cresça com o
// volume de eventos.
type DirectoryRepository interface {
	FindEmployees(ctx context.Context, ids []int64, names []string) ([]*domain.Employee, error)
	ListTrackedDepartments(ctx context.Context) ([]*domain.Department, error)
}

type directoryRepository struct {
	conn         *postgres.Connection
	queryTimeout time.Duration
}

func NewDirectoryRepository(conn *postgres.Connection, queryTimeout time.Duration) DirectoryRepository {
	return &directoryRepository{
		conn:         conn,
		queryTimeout: queryTimeout,
	}
}

// FindEmployees busca funcionários por lista de ids e por lista de nomes em
// uma única query. A comparação de nomes no banco aplica a mesma normalização
// do resolvedor — caixa baixa e espaços colapsados — senão um nome armazenado
// com espaço duplicado nunca sairia da query e o evento ficaria sem
// atribuição.
func (r *directoryRepository) FindEmployees(ctx context.Context, ids []int64, names []string) ([]*domain.Employee, error) {
	if len(ids) == 0 && len(names) == 0 {
		return []*domain.Employee{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	conditions := squirrel.Or{}
	if len(ids) > 0 {
		conditions = append(conditions, squirrel.Eq{"e.id": ids})
	}
	if len(names) > 0 {
		lowered := make([]string, 0, len(names))
		for _, name := range names {
			lowered = append(lowered, domain.NormalizeName(name))
		}
		conditions = append(conditions, squirrel.Eq{"LOWER(REGEXP_REPLACE(BTRIM(e.display_name), '\\s+', ' ', 'g'))": lowered})
	}

	query, args, err := squirrel.
		Select("e.id", "e.display_name", "e.department_id").
		From("employees e").
		Where(squirrel.Eq{"e.active": true}).
		Where(conditions).
		OrderBy("e.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de funcionários: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		var departmentID sql.NullInt64

		if err := rows.Scan(&employee.ID, &employee.DisplayName, &departmentID); err != nil {
			return nil, fmt.Errorf("erro ao escanear funcionário: %w", err)
		}

		if departmentID.Valid {
			id := departmentID.Int64
			employee.DepartmentID = &id
		}

		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de funcionários: %w", err)
	}

	return employees, nil
}

// ListTrackedDepartments retorna os departamentos rastreados com a meta
// configurada para o mês de relatório.
func (r *directoryRepository) ListTrackedDepartments(ctx context.Context) ([]*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query, args, err := squirrel.
		Select("d.id", "d.name", "d.target_amount", "d.is_tracked").
		From("departments d").
		Where(squirrel.Eq{"d.is_tracked": true}).
		OrderBy("d.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de departamentos: %w", err)
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		department := &domain.Department{}
		var target sql.NullFloat64

		if err := rows.Scan(&department.ID, &department.Name, &target, &department.IsTracked); err != nil {
			return nil, fmt.Errorf("erro ao escanear departamento: %w", err)
		}

		department.TargetAmount = target.Float64
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de departamentos: %w", err)
	}

	return departments, nil
}
