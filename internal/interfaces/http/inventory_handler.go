package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario.
type InventoryHandler struct {
	uc    *inventory.RegisterMovementUseCase
	query *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, query *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica IN, OUT o ADJUSTMENT de forma transaccional. Si el stock
//               baja, dispara la evaluación inmediata de reposición (best-effort).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity; adjustment_negative para restar en ADJUSTMENT"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		CompanyID:          GetCompanyID(c),
		UserID:             GetUserID(c),
		ProductID:          in.ProductID,
		Type:               in.Type,
		Quantity:           in.Quantity,
		UnitCost:           in.UnitCost,
		Reference:          in.Reference,
		AdjustmentNegative: in.AdjustmentNegative,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "máx. resultados (default 20)"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{productId} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.query.ListByProduct(c.Context(), GetCompanyID(c), c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
