package purchasing_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/stock"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para tests del ciclo de compras
// ──────────────────────────────────────────────────────────────────────────────

type memItemRepo struct {
	items map[string]*entity.Item
}

func newMemItemRepo(items ...*entity.Item) *memItemRepo {
	r := &memItemRepo{items: make(map[string]*entity.Item)}
	for _, it := range items {
		cp := *it
		r.items[it.ID] = &cp
	}
	return r
}

func (r *memItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) Update(item *entity.Item) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	cp.CurrentStock = stored.CurrentStock
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = newStock
	return nil
}

func (r *memItemRepo) List(limit, offset int, onlyActive bool) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) ListBelowReorderPoint() ([]repository.LowStockItem, error) {
	return nil, nil
}

func (r *memItemRepo) ExistsByCategory(string) (bool, error)   { return false, nil }
func (r *memItemRepo) ExistsByDepartment(string) (bool, error) { return false, nil }
func (r *memItemRepo) ExistsBySupplier(string) (bool, error)   { return false, nil }

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(mov *entity.StockMovement) error {
	if mov.IdempotencyKey != "" {
		for _, m := range r.movements {
			if m.IdempotencyKey == mov.IdempotencyKey {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *mov
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) ExistsKey(idempotencyKey string) (bool, error) {
	for _, m := range r.movements {
		if m.IdempotencyKey == idempotencyKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newMemSupplierRepo(suppliers ...*entity.Supplier) *memSupplierRepo {
	r := &memSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
	for _, s := range suppliers {
		cp := *s
		r.suppliers[s.ID] = &cp
	}
	return r
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) List(limit, offset int, onlyActive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSupplierRepo) Delete(id string) error {
	delete(r.suppliers, id)
	return nil
}

type memPORepo struct {
	orders  map[string]*entity.PurchaseOrder
	counter map[int]int
}

func newMemPORepo() *memPORepo {
	return &memPORepo{
		orders:  make(map[string]*entity.PurchaseOrder),
		counter: make(map[int]int),
	}
}

func (r *memPORepo) Create(po *entity.PurchaseOrder) error {
	for _, o := range r.orders {
		if o.PONumber == po.PONumber {
			return domain.ErrDuplicate
		}
	}
	r.orders[po.ID] = clonePO(po)
	return nil
}

func (r *memPORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return clonePO(po), nil
}

func (r *memPORepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *memPORepo) Update(po *entity.PurchaseOrder) error {
	if _, ok := r.orders[po.ID]; !ok {
		return domain.ErrNotFound
	}
	r.orders[po.ID] = clonePO(po)
	return nil
}

func (r *memPORepo) List(filter repository.POFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.orders {
		if filter.Status != "" && po.Status != filter.Status {
			continue
		}
		if filter.SupplierID != "" && po.SupplierID != filter.SupplierID {
			continue
		}
		out = append(out, clonePO(po))
	}
	return out, nil
}

func (r *memPORepo) NextPONumber(year int) (string, error) {
	r.counter[year]++
	return fmt.Sprintf("PO-%d-%05d", year, r.counter[year]), nil
}

func (r *memPORepo) HasOpenAutoOrder(itemID, supplierID string) (bool, error) {
	for _, po := range r.orders {
		if po.AutoGenerated && po.SourceItemID == itemID && po.SupplierID == supplierID &&
			(po.Status == entity.POStatusDraft || po.Status == entity.POStatusOrdered) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPORepo) ExistsBySupplier(supplierID string) (bool, error) {
	for _, po := range r.orders {
		if po.SupplierID == supplierID {
			return true, nil
		}
	}
	return false, nil
}

func clonePO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *po
	cp.Lines = append([]entity.POLine(nil), po.Lines...)
	if po.ReceivedDetails != nil {
		rd := *po.ReceivedDetails
		rd.Items = append([]entity.ReceivedLine(nil), po.ReceivedDetails.Items...)
		cp.ReceivedDetails = &rd
	}
	return &cp
}

type memIntentRepo struct {
	intents map[string]*entity.ReceiptIntent // por clave
}

func newMemIntentRepo() *memIntentRepo {
	return &memIntentRepo{intents: make(map[string]*entity.ReceiptIntent)}
}

func (r *memIntentRepo) CreatePending(intent *entity.ReceiptIntent) error {
	for _, it := range r.intents {
		if it.POID == intent.POID {
			return domain.ErrConflict // solo un intent pendiente por orden
		}
	}
	cp := *intent
	cp.Record.Items = append([]entity.ReceivedLine(nil), intent.Record.Items...)
	r.intents[intent.Key] = &cp
	return nil
}

func (r *memIntentRepo) GetPending(poID string) (*entity.ReceiptIntent, error) {
	for _, it := range r.intents {
		if it.POID == poID {
			cp := *it
			cp.Record.Items = append([]entity.ReceivedLine(nil), it.Record.Items...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memIntentRepo) Delete(key string) error {
	delete(r.intents, key)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner falso: sirve tanto al ciclo de compras como al libro de stock
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	itemRepo     *memItemRepo
	movRepo      *memMovementRepo
	supplierRepo *memSupplierRepo
	poRepo       *memPORepo
	intentRepo   *memIntentRepo
}

var (
	_ purchasing.TxRunner = (*fakeTxRunner)(nil)
	_ stock.TxRunner      = (*fakeTxRunner)(nil)
)

func (f *fakeTxRunner) RunPurchasing(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
	intentRepo repository.ReceiptIntentRepository,
) error) error {
	return fn(f.itemRepo, f.movRepo, f.supplierRepo, f.poRepo, f.intentRepo)
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return fn(f.itemRepo, f.movRepo, f.supplierRepo, f.poRepo)
}

// mustDecimal parsea un decimal literal de test.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		panic(err)
	}
	return d
}
