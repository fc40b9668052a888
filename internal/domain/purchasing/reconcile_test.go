package purchasing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/purchasing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func poLine(itemID string, qty, cost string) entity.POLine {
	q, c := d(qty), d(cost)
	return entity.POLine{
		ItemID: itemID, Name: "Ítem " + itemID, Unit: "und",
		Quantity: q, UnitCost: c, TotalCost: q.Mul(c),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: pedida=10 a 2.00, recibida=7, rechazada=2 a costo
// real 2.50 → faltante=1, valor rechazado=5.00, a pagar=17.50.
func TestReconcile_EscenarioBase(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "10", "2.00")}
	actual := d("2.50")
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{{
			ItemID:          "item-1",
			ReceivedQty:     d("7"),
			RejectedQty:     d("2"),
			ActualUnitCost:  &actual,
			RejectionReason: "empaque dañado",
		}},
		ReceivedBy: "user-1",
	}

	rec, err := purchasing.Reconcile(lines, in)
	require.NoError(t, err)
	require.Len(t, rec.Lines, 1)

	l := rec.Lines[0]
	assert.True(t, l.MissingQty.Equal(d("1")), "faltante = 10 - 7 - 2")
	assert.True(t, rec.TotalRejectedValue.Equal(d("5.00")), "2 × 2.50")
	assert.True(t, rec.FinalPayableAmount.Equal(d("17.50")), "7 × 2.50")
	// valor faltante al costo original: 1 × 2.00
	assert.True(t, rec.TotalMissingValue.Equal(d("2.00")))
	// invariante: recibida + rechazada + faltante == pedida
	sum := l.ReceivedQty.Add(l.RejectedQty).Add(l.MissingQty)
	assert.True(t, sum.Equal(l.OrderedQty))
}

// Política estricta: recibida+rechazada > pedida rechaza toda la recepción.
func TestReconcile_SobreconteoRechazado(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "10", "2.00")}
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{{
			ItemID:          "item-1",
			ReceivedQty:     d("8"),
			RejectedQty:     d("5"),
			RejectionReason: "vencido",
		}},
	}

	rec, err := purchasing.Reconcile(lines, in)
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, vErr.Line, "debe señalar la línea ofensora")
	assert.Equal(t, "received_qty", vErr.Field)
}

// Sin costo real, se usa el costo original de la línea.
func TestReconcile_CostoRealPorDefecto(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "4", "3.25")}
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{{ItemID: "item-1", ReceivedQty: d("4")}},
	}

	rec, err := purchasing.Reconcile(lines, in)
	require.NoError(t, err)
	assert.True(t, rec.Lines[0].ActualUnitCost.Equal(d("3.25")))
	assert.True(t, rec.FinalPayableAmount.Equal(d("13.00")))
	assert.True(t, rec.TotalRejectedValue.IsZero())
}

// Nota crédito sin valor rechazado ni faltante es inconsistente.
func TestReconcile_NotaCreditoSinReclamo(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "5", "1.00")}
	in := purchasing.ReceiptInput{
		Lines:               []purchasing.ReceiptLineInput{{ItemID: "item-1", ReceivedQty: d("5")}},
		CreditNoteRequested: true,
	}

	_, err := purchasing.Reconcile(lines, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Nota crédito con faltante sí es válida.
func TestReconcile_NotaCreditoConFaltante(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "5", "1.00")}
	in := purchasing.ReceiptInput{
		Lines:               []purchasing.ReceiptLineInput{{ItemID: "item-1", ReceivedQty: d("3")}},
		CreditNoteRequested: true,
	}

	rec, err := purchasing.Reconcile(lines, in)
	require.NoError(t, err)
	assert.True(t, rec.TotalMissingValue.Equal(d("2.00")))
}

// Falta la línea de un ítem de la orden: se rechaza (la recepción cubre toda la orden).
func TestReconcile_LineaFaltante(t *testing.T) {
	lines := []entity.POLine{
		poLine("item-1", "5", "1.00"),
		poLine("item-2", "3", "2.00"),
	}
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{{ItemID: "item-1", ReceivedQty: d("5")}},
	}

	_, err := purchasing.Reconcile(lines, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Un ítem que no pertenece a la orden se rechaza.
func TestReconcile_ItemAjeno(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "5", "1.00")}
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{
			{ItemID: "item-1", ReceivedQty: d("5")},
			{ItemID: "item-99", ReceivedQty: d("1")},
		},
	}

	_, err := purchasing.Reconcile(lines, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Cantidad rechazada sin motivo se rechaza.
func TestReconcile_RechazoSinMotivo(t *testing.T) {
	lines := []entity.POLine{poLine("item-1", "5", "1.00")}
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{{ItemID: "item-1", ReceivedQty: d("3"), RejectedQty: d("2")}},
	}

	_, err := purchasing.Reconcile(lines, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Varias líneas: los agregados suman sobre todas.
func TestReconcile_VariasLineas(t *testing.T) {
	lines := []entity.POLine{
		poLine("item-1", "10", "2.00"),
		poLine("item-2", "6", "5.00"),
	}
	actual := d("2.50")
	in := purchasing.ReceiptInput{
		Lines: []purchasing.ReceiptLineInput{
			{ItemID: "item-1", ReceivedQty: d("7"), RejectedQty: d("2"), ActualUnitCost: &actual, RejectionReason: "roto"},
			{ItemID: "item-2", ReceivedQty: d("6")},
		},
	}

	rec, err := purchasing.Reconcile(lines, in)
	require.NoError(t, err)
	assert.True(t, rec.FinalPayableAmount.Equal(d("47.50")), "17.50 + 30.00")
	assert.True(t, rec.TotalRejectedValue.Equal(d("5.00")))
	assert.True(t, rec.TotalMissingValue.Equal(d("2.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderTotal
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderTotal(t *testing.T) {
	lines := []entity.POLine{
		poLine("a", "3", "1.50"),
		poLine("b", "2", "10.00"),
	}
	assert.True(t, purchasing.OrderTotal(lines).Equal(d("24.50")))
	assert.True(t, purchasing.OrderTotal(nil).IsZero())
}
