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

var _ repository.ReceiptIntentRepository = (*ReceiptIntentRepo)(nil)

// ReceiptIntentRepo implementación sobre PostgreSQL (usable con pool o tx).
// Un índice único sobre po_id garantiza a lo sumo un intent pendiente por orden.
type ReceiptIntentRepo struct {
	q Querier
}

// NewReceiptIntentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptIntentRepository(q Querier) *ReceiptIntentRepo {
	return &ReceiptIntentRepo{q: q}
}

// CreatePending persiste un intent de recepción. Devuelve ErrConflict si la
// orden ya tiene uno pendiente (otra recepción en curso).
func (r *ReceiptIntentRepo) CreatePending(intent *entity.ReceiptIntent) error {
	recordJSON, err := json.Marshal(intent.Record)
	if err != nil {
		return fmt.Errorf("marshal receipt record: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO receipt_intents (key, po_id, record, created_at) VALUES ($1, $2, $3, $4)`,
		intent.Key, intent.POID, recordJSON, intent.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert receipt intent: %w", err)
	}
	return nil
}

// GetPending devuelve el intent pendiente de una orden, o nil si no hay.
func (r *ReceiptIntentRepo) GetPending(poID string) (*entity.ReceiptIntent, error) {
	var intent entity.ReceiptIntent
	var recordJSON []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT key, po_id, record, created_at FROM receipt_intents WHERE po_id = $1`, poID,
	).Scan(&intent.Key, &intent.POID, &recordJSON, &intent.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt intent: %w", err)
	}
	if err := json.Unmarshal(recordJSON, &intent.Record); err != nil {
		return nil, fmt.Errorf("unmarshal receipt record: %w", err)
	}
	return &intent, nil
}

// Delete elimina un intent por clave (la recepción terminó de aplicarse).
func (r *ReceiptIntentRepo) Delete(key string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM receipt_intents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete receipt intent: %w", err)
	}
	return nil
}
