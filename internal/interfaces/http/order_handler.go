package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP del ciclo de vida de órdenes de compra.
type OrderHandler struct {
	uc *purchasing.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra manual (borrador)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "provider_id y líneas; unit_price opcional (snapshot del precio actual)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]purchasing.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, purchasing.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	po, err := h.uc.CreateDraft(c.Context(), GetCompanyID(c), in.ProviderID, in.Notes, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(po))
}

// Submit godoc
// @Summary      Enviar orden a aprobación
// @Description  DRAFT -> PENDING_APPROVAL.
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/submit [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	if err := h.uc.Submit(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden enviada a aprobación"})
}

// Approve godoc
// @Summary      Aprobar orden
// @Description  PENDING_APPROVAL -> APPROVED. Registra quién aprueba; si el
//               body no trae approved_by se toma el header X-User-ID.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID de la orden"
// @Param        body  body  dto.ApproveOrderRequest  false  "approved_by"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	actor := in.ApprovedBy
	if actor == "" {
		actor = GetUserID(c)
	}
	if err := h.uc.Approve(c.Context(), GetCompanyID(c), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden aprobada"})
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Válido desde PENDING_REVIEW, PENDING_APPROVAL o APPROVED.
//               CANCELLED es terminal.
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden cancelada"})
}

// Send godoc
// @Summary      Enviar orden al proveedor
// @Description  Genera el PDF y lo despacha por correo. Solo si el envío tiene
//               éxito la orden pasa a SENT; si el correo falla, el estado no cambia.
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/send [post]
func (h *OrderHandler) Send(c *fiber.Ctx) error {
	if err := h.uc.Send(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden enviada al proveedor"})
}

// Receive godoc
// @Summary      Registrar recepción de la orden
// @Description  SENT -> RECEIVED. Incrementa el stock y registra un movimiento
//               RECEIPT por cada línea, todo en una sola transacción.
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	if err := h.uc.Receive(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden recibida e inventario actualizado"})
}

// GetByID godoc
// @Summary      Obtener orden por ID (con líneas)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        origin  query  string  false  "filtrar por origen (MANUAL, IMMEDIATE_TRIGGER, BATCH_SWEEP)"
// @Param        limit   query  int     false  "máx. resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	filter := repository.OrderFilter{
		Status: c.Query("status"),
		Origin: c.Query("origin"),
	}
	list, err := h.uc.List(c.Context(), GetCompanyID(c), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, dto.ToOrderResponse(po))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}
