package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems de inventario. Nunca toca
// CurrentStock directamente: eso es territorio exclusivo de AdjustStockUseCase.
// Los ítems no se borran físicamente (quedan referenciados por órdenes
// históricas); se desactivan con DeactivateItem.
type ItemUseCase struct {
	itemRepo       repository.ItemRepository
	categoryRepo   repository.CategoryRepository
	departmentRepo repository.DepartmentRepository
	supplierRepo   repository.SupplierRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	departmentRepo repository.DepartmentRepository,
	supplierRepo repository.SupplierRepository,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:       itemRepo,
		categoryRepo:   categoryRepo,
		departmentRepo: departmentRepo,
		supplierRepo:   supplierRepo,
	}
}

// Create crea un ítem. Los niveles (min/max/reorden) solo se validan contra
// negativos y max >= min; la jerarquía reorden <= min se deja al operador.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.NewValidationError("sku", "sku, name y unit son requeridos")
	}
	if err := validateLevels(in.MinStockLevel, in.MaxStockLevel, in.ReorderPoint, in.UnitCost, in.InitialStock); err != nil {
		return nil, err
	}
	if in.ConversionFactor.IsNegative() || (in.PurchaseUnit != "" && !in.ConversionFactor.IsPositive()) {
		return nil, domain.NewValidationError("conversion_factor", "debe ser > 0 cuando hay unidad de compra")
	}

	existing, err := uc.itemRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkRefs(in.CategoryID, in.DepartmentID, in.PreferredSupplierID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.Item{
		ID:                  uuid.New().String(),
		SKU:                 in.SKU,
		Name:                in.Name,
		DepartmentID:        in.DepartmentID,
		CategoryID:          in.CategoryID,
		Unit:                in.Unit,
		CurrentStock:        in.InitialStock,
		MinStockLevel:       in.MinStockLevel,
		MaxStockLevel:       in.MaxStockLevel,
		ReorderPoint:        in.ReorderPoint,
		UnitCost:            in.UnitCost,
		PurchaseUnit:        in.PurchaseUnit,
		ConversionFactor:    in.ConversionFactor,
		PreferredSupplierID: in.PreferredSupplierID,
		Location:            in.Location,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return ToItemResponse(item), nil
}

// Update aplica un parche de atributos (estructura explícita, no un mapa libre).
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.NewValidationError("name", "no puede quedar vacío")
		}
		item.Name = *in.Name
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.DepartmentID != nil {
		item.DepartmentID = *in.DepartmentID
	}
	if in.MinStockLevel != nil {
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		item.MaxStockLevel = *in.MaxStockLevel
	}
	if in.ReorderPoint != nil {
		item.ReorderPoint = *in.ReorderPoint
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.PurchaseUnit != nil {
		item.PurchaseUnit = *in.PurchaseUnit
	}
	if in.ConversionFactor != nil {
		item.ConversionFactor = *in.ConversionFactor
	}
	if in.PreferredSupplierID != nil {
		item.PreferredSupplierID = *in.PreferredSupplierID
	}
	if in.Location != nil {
		item.Location = *in.Location
	}

	if err := validateLevels(item.MinStockLevel, item.MaxStockLevel, item.ReorderPoint, item.UnitCost, decimal.Zero); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(item.CategoryID, item.DepartmentID, item.PreferredSupplierID); err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Deactivate desactiva un ítem (soft-disable). El registro permanece para las
// órdenes históricas que lo referencian.
func (uc *ItemUseCase) Deactivate(id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if !item.IsActive {
		return nil
	}
	item.IsActive = false
	item.UpdatedAt = time.Now()
	return uc.itemRepo.Update(item)
}

// List lista ítems con paginación.
func (uc *ItemUseCase) List(limit, offset int, onlyActive bool) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.List(limit, offset, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// checkRefs valida que categoría, departamento y proveedor preferido existan.
func (uc *ItemUseCase) checkRefs(categoryID, departmentID, supplierID string) error {
	if categoryID != "" {
		cat, err := uc.categoryRepo.GetByID(categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.NewValidationError("category_id", "categoría inexistente")
		}
	}
	if departmentID != "" {
		dep, err := uc.departmentRepo.GetByID(departmentID)
		if err != nil {
			return err
		}
		if dep == nil {
			return domain.NewValidationError("department_id", "departamento inexistente")
		}
	}
	if supplierID != "" {
		sup, err := uc.supplierRepo.GetByID(supplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.NewValidationError("preferred_supplier_id", "proveedor inexistente")
		}
	}
	return nil
}

func validateLevels(min, max, reorder, unitCost, initial decimal.Decimal) error {
	if min.IsNegative() || max.IsNegative() || reorder.IsNegative() {
		return domain.NewValidationError("min_stock_level", "los niveles no pueden ser negativos")
	}
	if max.IsPositive() && max.LessThan(min) {
		return domain.NewValidationError("max_stock_level", "debe ser >= min_stock_level")
	}
	if unitCost.IsNegative() {
		return domain.NewValidationError("unit_cost", "no puede ser negativo")
	}
	if initial.IsNegative() {
		return domain.NewValidationError("initial_stock", "no puede ser negativo")
	}
	return nil
}

// ToItemResponse convierte la entidad al DTO de salida.
func ToItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                  i.ID,
		SKU:                 i.SKU,
		Name:                i.Name,
		DepartmentID:        i.DepartmentID,
		CategoryID:          i.CategoryID,
		Unit:                i.Unit,
		CurrentStock:        i.CurrentStock,
		MinStockLevel:       i.MinStockLevel,
		MaxStockLevel:       i.MaxStockLevel,
		ReorderPoint:        i.ReorderPoint,
		UnitCost:            i.UnitCost,
		PurchaseUnit:        i.PurchaseUnit,
		ConversionFactor:    i.ConversionFactor,
		PreferredSupplierID: i.PreferredSupplierID,
		Location:            i.Location,
		IsActive:            i.IsActive,
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}
}
