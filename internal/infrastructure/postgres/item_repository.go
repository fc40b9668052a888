package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, sku, name, department_id, category_id, unit, current_stock,
	min_stock_level, max_stock_level, reorder_point, unit_cost, purchase_unit,
	conversion_factor, preferred_supplier_id, location, is_active, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem. Devuelve ErrDuplicate si el SKU ya existe.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, nullable(item.DepartmentID), nullable(item.CategoryID),
		item.Unit, item.CurrentStock, item.MinStockLevel, item.MaxStockLevel, item.ReorderPoint,
		item.UnitCost, item.PurchaseUnit, item.ConversionFactor, nullable(item.PreferredSupplierID),
		item.Location, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetBySKU obtiene un ítem por SKU.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku)
}

// GetForUpdate bloquea la fila del ítem dentro de la transacción actual.
// Solo tiene sentido con un Querier transaccional.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) getOne(query, arg string) (*entity.Item, error) {
	var it entity.Item
	var departmentID, categoryID, supplierID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.SKU, &it.Name, &departmentID, &categoryID, &it.Unit, &it.CurrentStock,
		&it.MinStockLevel, &it.MaxStockLevel, &it.ReorderPoint, &it.UnitCost, &it.PurchaseUnit,
		&it.ConversionFactor, &supplierID, &it.Location, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	it.DepartmentID = deref(departmentID)
	it.CategoryID = deref(categoryID)
	it.PreferredSupplierID = deref(supplierID)
	return &it, nil
}

// Update actualiza un ítem existente. No toca current_stock: eso es de UpdateStock.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET sku = $2, name = $3, department_id = $4, category_id = $5, unit = $6,
			min_stock_level = $7, max_stock_level = $8, reorder_point = $9, unit_cost = $10,
			purchase_unit = $11, conversion_factor = $12, preferred_supplier_id = $13,
			location = $14, is_active = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, nullable(item.DepartmentID), nullable(item.CategoryID),
		item.Unit, item.MinStockLevel, item.MaxStockLevel, item.ReorderPoint, item.UnitCost,
		item.PurchaseUnit, item.ConversionFactor, nullable(item.PreferredSupplierID),
		item.Location, item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock escribe el nivel de stock resultante. Única escritura de current_stock.
func (r *ItemRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// List lista ítems con paginación; onlyActive filtra los desactivados.
func (r *ItemRepo) List(limit, offset int, onlyActive bool) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		var departmentID, categoryID, supplierID *string
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.Name, &departmentID, &categoryID, &it.Unit, &it.CurrentStock,
			&it.MinStockLevel, &it.MaxStockLevel, &it.ReorderPoint, &it.UnitCost, &it.PurchaseUnit,
			&it.ConversionFactor, &supplierID, &it.Location, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.DepartmentID = deref(departmentID)
		it.CategoryID = deref(categoryID)
		it.PreferredSupplierID = deref(supplierID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint devuelve los ítems activos en o bajo su punto de reorden,
// los de mayor déficit primero.
func (r *ItemRepo) ListBelowReorderPoint() ([]repository.LowStockItem, error) {
	query := `
		SELECT id, sku, name, current_stock, reorder_point, max_stock_level, unit_cost,
			COALESCE(preferred_supplier_id::text, '')
		FROM items
		WHERE is_active AND reorder_point > 0 AND current_stock <= reorder_point
		ORDER BY (reorder_point - current_stock) DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var li repository.LowStockItem
		if err := rows.Scan(&li.ItemID, &li.SKU, &li.Name, &li.CurrentStock,
			&li.ReorderPoint, &li.MaxStockLevel, &li.UnitCost, &li.PreferredSupplierID); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, li)
	}
	return list, rows.Err()
}

// ExistsByCategory indica si algún ítem referencia la categoría.
func (r *ItemRepo) ExistsByCategory(categoryID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM items WHERE category_id = $1)`, categoryID)
}

// ExistsByDepartment indica si algún ítem referencia el departamento.
func (r *ItemRepo) ExistsByDepartment(departmentID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM items WHERE department_id = $1)`, departmentID)
}

// ExistsBySupplier indica si algún ítem tiene al proveedor como preferido.
func (r *ItemRepo) ExistsBySupplier(supplierID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM items WHERE preferred_supplier_id = $1)`, supplierID)
}

func (r *ItemRepo) exists(query, arg string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists item: %w", err)
	}
	return ok, nil
}

// nullable convierte "" en NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
