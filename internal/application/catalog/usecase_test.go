package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/catalog"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos: los guards de borrado solo necesitan los Exists* y las lecturas
// ──────────────────────────────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[string]*entity.Supplier
	deleted   []string
}

func (r *stubSupplierRepo) Create(s *entity.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *stubSupplierRepo) Update(s *entity.Supplier) error { return nil }

func (r *stubSupplierRepo) List(limit, offset int, onlyActive bool) ([]*entity.Supplier, error) {
	return nil, nil
}

func (r *stubSupplierRepo) Delete(id string) error {
	delete(r.suppliers, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubCategoryRepo struct {
	categories map[string]*entity.Category
	dupLabel   string // Create con este label devuelve ErrDuplicate
	deleted    []string
}

func (r *stubCategoryRepo) Create(c *entity.Category) error {
	if r.dupLabel != "" && c.Label == r.dupLabel {
		return domain.ErrDuplicate
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *stubCategoryRepo) Update(c *entity.Category) error { return nil }

func (r *stubCategoryRepo) List(limit, offset int) ([]*entity.Category, error) { return nil, nil }

func (r *stubCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubDepartmentRepo struct {
	departments map[string]*entity.Department
	deleted     []string
}

func (r *stubDepartmentRepo) Create(d *entity.Department) error {
	r.departments[d.ID] = d
	return nil
}

func (r *stubDepartmentRepo) GetByID(id string) (*entity.Department, error) {
	return r.departments[id], nil
}

func (r *stubDepartmentRepo) Update(d *entity.Department) error { return nil }

func (r *stubDepartmentRepo) List(limit, offset int) ([]*entity.Department, error) {
	return nil, nil
}

func (r *stubDepartmentRepo) Delete(id string) error {
	delete(r.departments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// stubItemRefs responde los Exists* según los sets configurados.
type stubItemRefs struct {
	byCategory   map[string]bool
	byDepartment map[string]bool
	bySupplier   map[string]bool
}

func (r *stubItemRefs) Create(*entity.Item) error                  { return nil }
func (r *stubItemRefs) GetByID(string) (*entity.Item, error)       { return nil, nil }
func (r *stubItemRefs) GetBySKU(string) (*entity.Item, error)      { return nil, nil }
func (r *stubItemRefs) GetForUpdate(string) (*entity.Item, error)  { return nil, nil }
func (r *stubItemRefs) Update(*entity.Item) error                  { return nil }
func (r *stubItemRefs) UpdateStock(string, decimal.Decimal) error  { return nil }
func (r *stubItemRefs) List(int, int, bool) ([]*entity.Item, error) { return nil, nil }
func (r *stubItemRefs) ListBelowReorderPoint() ([]repository.LowStockItem, error) {
	return nil, nil
}
func (r *stubItemRefs) ExistsByCategory(id string) (bool, error)   { return r.byCategory[id], nil }
func (r *stubItemRefs) ExistsByDepartment(id string) (bool, error) { return r.byDepartment[id], nil }
func (r *stubItemRefs) ExistsBySupplier(id string) (bool, error)   { return r.bySupplier[id], nil }

// stubPORefs responde ExistsBySupplier según el set configurado.
type stubPORefs struct {
	bySupplier map[string]bool
}

func (r *stubPORefs) Create(*entity.PurchaseOrder) error                 { return nil }
func (r *stubPORefs) GetByID(string) (*entity.PurchaseOrder, error)      { return nil, nil }
func (r *stubPORefs) GetForUpdate(string) (*entity.PurchaseOrder, error) { return nil, nil }
func (r *stubPORefs) Update(*entity.PurchaseOrder) error                 { return nil }
func (r *stubPORefs) List(repository.POFilter) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}
func (r *stubPORefs) NextPONumber(int) (string, error)            { return "", nil }
func (r *stubPORefs) HasOpenAutoOrder(string, string) (bool, error) { return false, nil }
func (r *stubPORefs) ExistsBySupplier(id string) (bool, error)    { return r.bySupplier[id], nil }

type catalogFixture struct {
	uc       *catalog.UseCase
	supplier *stubSupplierRepo
	category *stubCategoryRepo
	dept     *stubDepartmentRepo
	items    *stubItemRefs
	pos      *stubPORefs
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		supplier: &stubSupplierRepo{suppliers: make(map[string]*entity.Supplier)},
		category: &stubCategoryRepo{categories: make(map[string]*entity.Category)},
		dept:     &stubDepartmentRepo{departments: make(map[string]*entity.Department)},
		items: &stubItemRefs{
			byCategory:   make(map[string]bool),
			byDepartment: make(map[string]bool),
			bySupplier:   make(map[string]bool),
		},
		pos: &stubPORefs{bySupplier: make(map[string]bool)},
	}
	f.uc = catalog.NewUseCase(f.supplier, f.category, f.dept, f.items, f.pos)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Guards de borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSupplier_ReferenciadoPorItem(t *testing.T) {
	f := newCatalogFixture()
	f.supplier.suppliers["prov-1"] = &entity.Supplier{ID: "prov-1", Name: "Distrihogar"}
	f.items.bySupplier["prov-1"] = true

	err := f.uc.DeleteSupplier("prov-1")
	assert.ErrorIs(t, err, domain.ErrReferenced,
		"un proveedor preferido por algún ítem no puede borrarse")
	assert.Empty(t, f.supplier.deleted)
}

func TestDeleteSupplier_ReferenciadoPorOrden(t *testing.T) {
	f := newCatalogFixture()
	f.supplier.suppliers["prov-1"] = &entity.Supplier{ID: "prov-1", Name: "Distrihogar"}
	f.pos.bySupplier["prov-1"] = true

	err := f.uc.DeleteSupplier("prov-1")
	assert.ErrorIs(t, err, domain.ErrReferenced,
		"un proveedor con órdenes de compra no puede borrarse")
}

func TestDeleteSupplier_SinReferenciasOK(t *testing.T) {
	f := newCatalogFixture()
	f.supplier.suppliers["prov-1"] = &entity.Supplier{ID: "prov-1", Name: "Distrihogar"}

	require.NoError(t, f.uc.DeleteSupplier("prov-1"))
	assert.Equal(t, []string{"prov-1"}, f.supplier.deleted)
}

func TestDeleteSupplier_Inexistente(t *testing.T) {
	f := newCatalogFixture()
	assert.ErrorIs(t, f.uc.DeleteSupplier("no-existe"), domain.ErrNotFound)
}

func TestDeleteCategory_ConItemsRechazado(t *testing.T) {
	f := newCatalogFixture()
	f.category.categories["cat-1"] = &entity.Category{ID: "cat-1", Label: "Abarrotes"}
	f.items.byCategory["cat-1"] = true

	err := f.uc.DeleteCategory("cat-1")
	assert.ErrorIs(t, err, domain.ErrReferenced)
	assert.Empty(t, f.category.deleted)
}

func TestDeleteCategory_SinItemsOK(t *testing.T) {
	f := newCatalogFixture()
	f.category.categories["cat-1"] = &entity.Category{ID: "cat-1", Label: "Abarrotes"}

	require.NoError(t, f.uc.DeleteCategory("cat-1"))
	assert.Equal(t, []string{"cat-1"}, f.category.deleted)
}

func TestDeleteDepartment_ConItemsRechazado(t *testing.T) {
	f := newCatalogFixture()
	f.dept.departments["dep-1"] = &entity.Department{ID: "dep-1", Name: "Cocina"}
	f.items.byDepartment["dep-1"] = true

	err := f.uc.DeleteDepartment("dep-1")
	assert.ErrorIs(t, err, domain.ErrReferenced)
	assert.Empty(t, f.dept.deleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCategory_LabelDuplicado(t *testing.T) {
	f := newCatalogFixture()
	f.category.dupLabel = "Abarrotes"

	_, err := f.uc.CreateCategory(dto.CreateCategoryRequest{Label: "Abarrotes"})
	assert.ErrorIs(t, err, domain.ErrValidation,
		"un label repetido se reporta como error de validación")
}

func TestCreateSupplier_NombreRequerido(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.CreateSupplier(dto.CreateSupplierRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateSupplier_OK(t *testing.T) {
	f := newCatalogFixture()
	out, err := f.uc.CreateSupplier(dto.CreateSupplierRequest{
		Name:  "Distrihogar S.A.S.",
		Email: "ventas@distrihogar.co",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.IsActive, "un proveedor nuevo nace activo")
}
