package purchasing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	itemArrozID  = "item-arroz"
	itemAceiteID = "item-aceite"
	supplierID   = "prov-distrihogar"
	actorID      = "user-comprador-1"
)

func catalogItems() []*entity.Item {
	return []*entity.Item{
		{
			ID: itemArrozID, SKU: "ABA-001", Name: "Arroz blanco", Unit: "kg",
			CurrentStock: mustDecimal("10"), UnitCost: mustDecimal("3500"), IsActive: true,
		},
		{
			ID: itemAceiteID, SKU: "ABA-002", Name: "Aceite vegetal", Unit: "lt",
			CurrentStock: mustDecimal("5"), UnitCost: mustDecimal("9000"), IsActive: true,
		},
	}
}

func buildPOUseCase() (*purchasing.POUseCase, *fakeTxRunner) {
	tx := &fakeTxRunner{
		itemRepo: newMemItemRepo(catalogItems()...),
		movRepo:  &memMovementRepo{},
		supplierRepo: newMemSupplierRepo(&entity.Supplier{
			ID: supplierID, Name: "Distrihogar S.A.S.", IsActive: true,
		}),
		poRepo:     newMemPORepo(),
		intentRepo: newMemIntentRepo(),
	}
	return purchasing.NewPOUseCase(tx, tx.poRepo), tx
}

func twoLines() []dto.POLineInput {
	return []dto.POLineInput{
		{ItemID: itemArrozID, Quantity: mustDecimal("20"), UnitCost: mustDecimal("3500")},
		{ItemID: itemAceiteID, Quantity: mustDecimal("10"), UnitCost: mustDecimal("9000")},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePO_BorradorVacioEsValido(t *testing.T) {
	uc, _ := buildPOUseCase()

	// Guardar avance: sin proveedor ni líneas
	out, err := uc.Create(context.Background(), actorID, dto.CreatePORequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusDraft, out.Status)
	assert.Empty(t, out.SupplierID)
	assert.Empty(t, out.Lines)
	assert.True(t, out.TotalAmount.IsZero())

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PO-%d-00001", year), out.PONumber,
		"el consecutivo debe llevar el formato PO-<año>-<secuencia de 5 dígitos>")
}

func TestCreatePO_ConsecutivoIncrementa(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, actorID, dto.CreatePORequest{})
	require.NoError(t, err)
	second, err := uc.Create(ctx, actorID, dto.CreatePORequest{})
	require.NoError(t, err)

	assert.NotEqual(t, first.PONumber, second.PONumber)
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PO-%d-00002", year), second.PONumber)
}

func TestCreatePO_OrderedCalculaTotalYSnapshot(t *testing.T) {
	uc, _ := buildPOUseCase()

	out, err := uc.Create(context.Background(), actorID, dto.CreatePORequest{
		SupplierID: supplierID,
		Status:     entity.POStatusOrdered,
		Lines:      twoLines(),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusOrdered, out.Status)
	assert.Equal(t, "Distrihogar S.A.S.", out.SupplierName, "el nombre del proveedor se captura al crear")
	require.Len(t, out.Lines, 2)
	// Nombre y unidad denormalizados desde el catálogo
	assert.Equal(t, "Arroz blanco", out.Lines[0].Name)
	assert.Equal(t, "kg", out.Lines[0].Unit)
	// 20×3500 + 10×9000 = 160000
	assert.True(t, out.TotalAmount.Equal(mustDecimal("160000")),
		"total esperado 160000, dio %s", out.TotalAmount)
}

func TestCreatePO_OrderedSinProveedorRechazado(t *testing.T) {
	uc, _ := buildPOUseCase()

	_, err := uc.Create(context.Background(), actorID, dto.CreatePORequest{
		Status: entity.POStatusOrdered,
		Lines:  twoLines(),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreatePO_OrderedSinLineasRechazado(t *testing.T) {
	uc, _ := buildPOUseCase()

	_, err := uc.Create(context.Background(), actorID, dto.CreatePORequest{
		SupplierID: supplierID,
		Status:     entity.POStatusOrdered,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreatePO_LineaConItemInexistente(t *testing.T) {
	uc, _ := buildPOUseCase()

	_, err := uc.Create(context.Background(), actorID, dto.CreatePORequest{
		SupplierID: supplierID,
		Status:     entity.POStatusDraft,
		Lines: []dto.POLineInput{
			{ItemID: "no-existe", Quantity: mustDecimal("1")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreatePO_ItemRepetidoEnDosLineasRechazado(t *testing.T) {
	uc, _ := buildPOUseCase()

	// El mismo ítem a dos costos distintos: la recepción empareja por ítem,
	// así que una orden con el ítem repetido quedaría irrecibible.
	_, err := uc.Create(context.Background(), actorID, dto.CreatePORequest{
		SupplierID: supplierID,
		Status:     entity.POStatusOrdered,
		Lines: []dto.POLineInput{
			{ItemID: itemArrozID, Quantity: mustDecimal("10"), UnitCost: mustDecimal("2.00")},
			{ItemID: itemArrozID, Quantity: mustDecimal("5"), UnitCost: mustDecimal("2.50")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdatePO_ItemRepetidoEnDosLineasRechazado(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, actorID, dto.CreatePORequest{
		SupplierID: supplierID, Lines: twoLines(),
	})
	require.NoError(t, err)

	dupLines := []dto.POLineInput{
		{ItemID: itemAceiteID, Quantity: mustDecimal("3"), UnitCost: mustDecimal("9000")},
		{ItemID: itemAceiteID, Quantity: mustDecimal("2"), UnitCost: mustDecimal("9500")},
	}
	_, err = uc.Update(ctx, created.ID, dto.UpdatePORequest{Lines: &dupLines})
	assert.ErrorIs(t, err, domain.ErrValidation,
		"editar tampoco puede dejar el mismo ítem en dos líneas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestPlacePO_DraftPasaAOrdered(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, actorID, dto.CreatePORequest{
		SupplierID: supplierID,
		Lines:      twoLines(),
	})
	require.NoError(t, err)
	require.Equal(t, entity.POStatusDraft, created.Status)

	placed, err := uc.Place(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusOrdered, placed.Status)
}

func TestPlacePO_BorradorSinLineasRechazado(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, actorID, dto.CreatePORequest{SupplierID: supplierID})
	require.NoError(t, err)

	_, err = uc.Place(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrValidation,
		"colocar exige al menos una línea aunque el borrador vacío sea válido")
}

func TestCancelPO_DesdeDraftYOrdered(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, actorID, dto.CreatePORequest{SupplierID: supplierID})
	require.NoError(t, err)
	cancelled, err := uc.Cancel(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, cancelled.Status)

	ordered, err := uc.Create(ctx, actorID, dto.CreatePORequest{
		SupplierID: supplierID, Status: entity.POStatusOrdered, Lines: twoLines(),
	})
	require.NoError(t, err)
	cancelled, err = uc.Cancel(ctx, ordered.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, cancelled.Status)
}

func TestCancelPO_CanceladaEsTerminal(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, actorID, dto.CreatePORequest{SupplierID: supplierID})
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, draft.ID)
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cancelar dos veces no está permitido")
	_, err = uc.Place(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una orden cancelada no puede colocarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePO_ReemplazaLineasYRecalculaTotal(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, actorID, dto.CreatePORequest{
		SupplierID: supplierID, Lines: twoLines(),
	})
	require.NoError(t, err)

	newLines := []dto.POLineInput{
		{ItemID: itemArrozID, Quantity: mustDecimal("5"), UnitCost: mustDecimal("4000")},
	}
	updated, err := uc.Update(ctx, created.ID, dto.UpdatePORequest{Lines: &newLines})
	require.NoError(t, err)

	require.Len(t, updated.Lines, 1)
	assert.True(t, updated.TotalAmount.Equal(mustDecimal("20000")),
		"5 × 4000 = 20000, dio %s", updated.TotalAmount)
}

func TestUpdatePO_PermitidaEnOrdered(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, actorID, dto.CreatePORequest{
		SupplierID: supplierID, Status: entity.POStatusOrdered, Lines: twoLines(),
	})
	require.NoError(t, err)

	notes := "entregar por la recepción de servicio"
	updated, err := uc.Update(ctx, created.ID, dto.UpdatePORequest{Notes: &notes})
	require.NoError(t, err, "una orden colocada sigue siendo editable hasta recibirse")
	assert.Equal(t, notes, updated.Notes)
}

func TestUpdatePO_CanceladaEsInmutable(t *testing.T) {
	uc, _ := buildPOUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, actorID, dto.CreatePORequest{SupplierID: supplierID})
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, created.ID)
	require.NoError(t, err)

	notes := "no debería entrar"
	_, err = uc.Update(ctx, created.ID, dto.UpdatePORequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGetPO_Inexistente(t *testing.T) {
	uc, _ := buildPOUseCase()
	out, err := uc.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, out, "una orden inexistente devuelve nil; el handler lo traduce a 404")
}
