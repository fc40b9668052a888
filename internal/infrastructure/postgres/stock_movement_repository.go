package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock. Devuelve ErrDuplicate si la clave de
// idempotencia ya fue usada (índice único parcial sobre idempotency_key).
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, item_id, delta, new_stock, reason, idempotency_key, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if mov.CreatedBy != "" {
		createdBy = &mov.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ItemID, mov.Delta, mov.NewStock, mov.Reason,
		nullable(mov.IdempotencyKey), mov.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ExistsKey indica si la clave de idempotencia ya fue aplicada.
func (r *StockMovementRepo) ExistsKey(idempotencyKey string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_movements WHERE idempotency_key = $1)`,
		idempotencyKey,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists movement key: %w", err)
	}
	return ok, nil
}

// ListByItem lista los movimientos de un ítem, los más recientes primero.
func (r *StockMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, delta, new_stock, reason, COALESCE(idempotency_key, ''), created_at, COALESCE(created_by::text, '')
		FROM stock_movements WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Delta, &m.NewStock, &m.Reason,
			&m.IdempotencyKey, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
