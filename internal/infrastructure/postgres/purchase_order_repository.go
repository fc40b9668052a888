package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, po_number, supplier_id, supplier_name, status, lines, total_amount,
	expected_delivery_date, notes, invoice_url, target_location_id, auto_generated,
	source_item_id, received_details, created_at, updated_at`

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las líneas y el registro de recepción se guardan como JSONB en la fila de la
// orden: viajan y se versionan junto con su cabecera.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una orden nueva. Devuelve ErrDuplicate si po_number ya existe.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	linesJSON, err := json.Marshal(po.Lines)
	if err != nil {
		return fmt.Errorf("marshal po lines: %w", err)
	}
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULL, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		po.ID, po.PONumber, nullable(po.SupplierID), po.SupplierName, po.Status,
		linesJSON, po.TotalAmount, po.ExpectedDeliveryDate, po.Notes, po.InvoiceURL,
		po.TargetLocationID, po.AutoGenerated, nullable(po.SourceItemID),
		po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden dentro de la transacción actual.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	po, err := scanPO(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// Update reescribe la orden completa, JSONB incluidos.
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	linesJSON, err := json.Marshal(po.Lines)
	if err != nil {
		return fmt.Errorf("marshal po lines: %w", err)
	}
	var receivedJSON []byte
	if po.ReceivedDetails != nil {
		receivedJSON, err = json.Marshal(po.ReceivedDetails)
		if err != nil {
			return fmt.Errorf("marshal received details: %w", err)
		}
	}
	query := `
		UPDATE purchase_orders SET supplier_id = $2, supplier_name = $3, status = $4,
			lines = $5, total_amount = $6, expected_delivery_date = $7, notes = $8,
			invoice_url = $9, target_location_id = $10, received_details = $11, updated_at = $12
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		po.ID, nullable(po.SupplierID), po.SupplierName, po.Status, linesJSON,
		po.TotalAmount, po.ExpectedDeliveryDate, po.Notes, po.InvoiceURL,
		po.TargetLocationID, receivedJSON, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// List lista órdenes con filtros opcionales de estado y proveedor, recientes primero.
func (r *PurchaseOrderRepo) List(filter repository.POFilter) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		query += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// NextPONumber reserva el siguiente consecutivo del año con formato PO-<year>-<seq>.
// La fila del contador se bloquea implícitamente por el UPDATE, de modo que dos
// transacciones concurrentes nunca obtienen el mismo número.
func (r *PurchaseOrderRepo) NextPONumber(year int) (string, error) {
	query := `
		INSERT INTO po_counters (year, last_seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = po_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("next po number: %w", err)
	}
	return fmt.Sprintf("PO-%d-%05d", year, seq), nil
}

// HasOpenAutoOrder indica si existe una orden automática en draft u ordered
// para el ítem origen y proveedor dados.
func (r *PurchaseOrderRepo) HasOpenAutoOrder(itemID, supplierID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM purchase_orders
			WHERE auto_generated AND source_item_id = $1 AND supplier_id = $2
				AND status IN ('draft', 'ordered')
		)`
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, itemID, supplierID).Scan(&ok); err != nil {
		return false, fmt.Errorf("has open auto order: %w", err)
	}
	return ok, nil
}

// ExistsBySupplier indica si alguna orden referencia al proveedor.
func (r *PurchaseOrderRepo) ExistsBySupplier(supplierID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE supplier_id = $1)`, supplierID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists po by supplier: %w", err)
	}
	return ok, nil
}

// scanPO escanea una fila completa de purchase_orders (pgx.Row o pgx.Rows).
func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var supplierID, sourceItemID *string
	var linesJSON []byte
	var receivedJSON []byte
	err := row.Scan(
		&po.ID, &po.PONumber, &supplierID, &po.SupplierName, &po.Status, &linesJSON,
		&po.TotalAmount, &po.ExpectedDeliveryDate, &po.Notes, &po.InvoiceURL,
		&po.TargetLocationID, &po.AutoGenerated, &sourceItemID, &receivedJSON,
		&po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.SupplierID = deref(supplierID)
	po.SourceItemID = deref(sourceItemID)
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &po.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal po lines: %w", err)
		}
	}
	if len(receivedJSON) > 0 {
		var rd entity.ReceivingRecord
		if err := json.Unmarshal(receivedJSON, &rd); err != nil {
			return nil, fmt.Errorf("unmarshal received details: %w", err)
		}
		po.ReceivedDetails = &rd
	}
	return &po, nil
}
