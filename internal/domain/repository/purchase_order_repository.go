package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// POFilter filtros para listar órdenes de compra.
type POFilter struct {
	Status     string // vacío = todos
	SupplierID string // vacío = todos
	Limit      int
	Offset     int
}

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
// Las líneas y el ReceivingRecord viajan embebidos en el documento de la orden
// (la pista de auditoría de una recepción vive pegada e inmutable a su orden).
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
	List(filter POFilter) ([]*entity.PurchaseOrder, error)
	// NextPONumber reserva el siguiente consecutivo del año (sin huecos, serializado por tx).
	NextPONumber(year int) (string, error)
	// HasOpenAutoOrder indica si ya existe una orden automática abierta (draft u ordered)
	// para el ítem y proveedor dados: es la guarda de idempotencia del disparador de reposición.
	HasOpenAutoOrder(itemID, supplierID string) (bool, error)
	ExistsBySupplier(supplierID string) (bool, error)
}

// ReceiptIntentRepository define el puerto para marcas de recepción en curso.
// CreatePending devuelve domain.ErrConflict si la orden ya tiene un intent pendiente.
type ReceiptIntentRepository interface {
	CreatePending(intent *entity.ReceiptIntent) error
	GetPending(poID string) (*entity.ReceiptIntent, error)
	Delete(key string) error
}
