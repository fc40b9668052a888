// Package catalog implementa el registro maestro de proveedores, categorías y
// departamentos: el catálogo contra el que se validan ítems y órdenes.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// UseCase agrupa las operaciones CRUD del catálogo. Los borrados están
// protegidos por integridad referencial: una entidad referenciada por algún
// ítem u orden devuelve ErrReferenced en lugar de borrarse.
type UseCase struct {
	supplierRepo repository.SupplierRepository
	categoryRepo repository.CategoryRepository
	deptRepo     repository.DepartmentRepository
	itemRepo     repository.ItemRepository
	poRepo       repository.PurchaseOrderRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(
	supplierRepo repository.SupplierRepository,
	categoryRepo repository.CategoryRepository,
	deptRepo repository.DepartmentRepository,
	itemRepo repository.ItemRepository,
	poRepo repository.PurchaseOrderRepository,
) *UseCase {
	return &UseCase{
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
		deptRepo:     deptRepo,
		itemRepo:     itemRepo,
		poRepo:       poRepo,
	}
}

// ─────────────────────────── Proveedores ───────────────────────────

// CreateSupplier registra un proveedor nuevo, activo por defecto.
func (uc *UseCase) CreateSupplier(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *UseCase) GetSupplier(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// UpdateSupplier aplica un parche sobre un proveedor existente.
func (uc *UseCase) UpdateSupplier(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.NewValidationError("name", "no puede ser vacío")
		}
		supplier.Name = *in.Name
	}
	if in.ContactName != nil {
		supplier.ContactName = *in.ContactName
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *UseCase) ListSuppliers(limit, offset int, onlyActive bool) (*dto.SupplierListResponse, error) {
	list, err := uc.supplierRepo.List(limit, offset, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteSupplier borra un proveedor si ningún ítem lo tiene como preferido y
// ninguna orden lo referencia; de lo contrario ErrReferenced.
func (uc *UseCase) DeleteSupplier(id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	refByItem, err := uc.itemRepo.ExistsBySupplier(id)
	if err != nil {
		return err
	}
	refByPO, err := uc.poRepo.ExistsBySupplier(id)
	if err != nil {
		return err
	}
	if refByItem || refByPO {
		return domain.ErrReferenced
	}
	return uc.supplierRepo.Delete(id)
}

// ─────────────────────────── Categorías ───────────────────────────

// CreateCategory registra una categoría nueva.
func (uc *UseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Label == "" {
		return nil, domain.NewValidationError("label", "requerido")
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Label:     in.Label,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("label", "ya existe una categoría con ese nombre")
		}
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategory obtiene una categoría por ID.
func (uc *UseCase) GetCategory(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// ListCategories lista categorías con paginación.
func (uc *UseCase) ListCategories(limit, offset int) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// DeleteCategory borra una categoría sin ítems asociados; de lo contrario ErrReferenced.
func (uc *UseCase) DeleteCategory(id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.itemRepo.ExistsByCategory(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrReferenced
	}
	return uc.categoryRepo.Delete(id)
}

// ─────────────────────────── Departamentos ───────────────────────────

// CreateDepartment registra un departamento nuevo.
func (uc *UseCase) CreateDepartment(in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	now := time.Now()
	dept := &entity.Department{
		ID:        uuid.New().String(),
		Name:      in.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.deptRepo.Create(dept); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("name", "ya existe un departamento con ese nombre")
		}
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// GetDepartment obtiene un departamento por ID.
func (uc *UseCase) GetDepartment(id string) (*dto.DepartmentResponse, error) {
	dept, err := uc.deptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	return toDepartmentResponse(dept), nil
}

// ListDepartments lista departamentos con paginación.
func (uc *UseCase) ListDepartments(limit, offset int) ([]dto.DepartmentResponse, error) {
	list, err := uc.deptRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDepartmentResponse(d))
	}
	return items, nil
}

// DeleteDepartment borra un departamento sin ítems asociados; de lo contrario ErrReferenced.
func (uc *UseCase) DeleteDepartment(id string) error {
	dept, err := uc.deptRepo.GetByID(id)
	if err != nil {
		return err
	}
	if dept == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.itemRepo.ExistsByDepartment(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrReferenced
	}
	return uc.deptRepo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Label:     c.Label,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toDepartmentResponse(d *entity.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
