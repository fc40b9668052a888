package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// LowStockItem resultado crudo del repositorio para un ítem en o bajo su punto de reorden.
type LowStockItem struct {
	ItemID              string
	SKU                 string
	Name                string
	CurrentStock        decimal.Decimal
	ReorderPoint        decimal.Decimal
	MaxStockLevel       decimal.Decimal
	UnitCost            decimal.Decimal
	PreferredSupplierID string
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// UpdateStock es la única escritura de CurrentStock; los demás métodos no tocan ese campo.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	UpdateStock(id string, newStock decimal.Decimal) error
	List(limit, offset int, onlyActive bool) ([]*entity.Item, error)
	// ListBelowReorderPoint devuelve los ítems activos con stock <= punto de reorden,
	// ordenados por mayor déficit primero.
	ListBelowReorderPoint() ([]LowStockItem, error)
	ExistsByCategory(categoryID string) (bool, error)
	ExistsByDepartment(departmentID string) (bool, error)
	ExistsBySupplier(supplierID string) (bool, error)
}

// StockMovementRepository define el puerto para el registro de auditoría de stock.
// Create devuelve domain.ErrDuplicate si IdempotencyKey ya fue usada.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ExistsKey(idempotencyKey string) (bool, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
