package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un departamento. Devuelve ErrDuplicate si el nombre ya existe.
func (r *DepartmentRepo) Create(department *entity.Department) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO departments (id, name, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		department.ID, department.Name, department.IsActive, department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(id string) (*entity.Department, error) {
	var d entity.Department
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, is_active, created_at, updated_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// Update actualiza un departamento existente.
func (r *DepartmentRepo) Update(department *entity.Department) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE departments SET name = $2, is_active = $3, updated_at = $4 WHERE id = $1`,
		department.ID, department.Name, department.IsActive, department.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// List lista departamentos con paginación.
func (r *DepartmentRepo) List(limit, offset int) ([]*entity.Department, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, is_active, created_at, updated_at FROM departments ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina un departamento por ID. El guard de integridad referencial vive en el use case.
func (r *DepartmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
