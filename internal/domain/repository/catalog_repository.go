package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int, onlyActive bool) ([]*entity.Supplier, error)
	Delete(id string) error
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	Delete(id string) error
}

// DepartmentRepository define el puerto de persistencia para Department.
type DepartmentRepository interface {
	Create(department *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	Update(department *entity.Department) error
	List(limit, offset int) ([]*entity.Department, error)
	Delete(id string) error
}
