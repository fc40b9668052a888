package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/stock"
)

// StockHandler maneja ajustes de stock y reportes del libro de inventario (protegido).
type StockHandler struct {
	adjustUC *stock.AdjustStockUseCase
	reportUC *stock.ReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjustUC *stock.AdjustStockUseCase, reportUC *stock.ReportUseCase) *StockHandler {
	return &StockHandler{adjustUC: adjustUC, reportUC: reportUC}
}

// Adjust godoc
// @Summary      Ajustar stock de un ítem
// @Description  Único punto de mutación de current_stock. Un delta que deje el
//
//	stock en negativo se rechaza con 409 salvo allow_negative=true.
//	Si el resultado cruza el punto de reorden, la respuesta incluye
//	el ID de la orden automática creada.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "item_id, delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.adjustUC.Adjust(c.Context(), stock.AdjustInput{
		ItemID:         in.ItemID,
		Delta:          in.Delta,
		Reason:         in.Reason,
		AllowNegative:  in.AllowNegative,
		IdempotencyKey: in.IdempotencyKey,
		ActorID:        userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/items/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.reportUC.Movements(c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de ítems en o bajo su punto de reorden
// @Description  Cantidad sugerida para volver al nivel máximo, mayor déficit primero.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reportUC.LowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}
