package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/rule"
)

// RuleHandler maneja las peticiones HTTP de reglas de reposición.
type RuleHandler struct {
	uc *rule.UseCase
}

// NewRuleHandler construye el handler.
func NewRuleHandler(uc *rule.UseCase) *RuleHandler {
	return &RuleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear regla de reposición
// @Description  Si ya existe una regla para (producto, proveedor) la reemplaza.
// @Tags         reorder-rules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderRuleRequest  true  "product_id, provider_id, trigger_stock, reorder_quantity"
// @Success      201   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorder-rules [post]
func (h *RuleHandler) Create(c *fiber.Ctx) error {
	var in dto.ReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, err := h.uc.Create(c.Context(), GetCompanyID(c), ruleInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReorderRuleResponse(r))
}

// Update godoc
// @Summary      Editar regla de reposición
// @Tags         reorder-rules
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la regla"
// @Param        body  body  dto.ReorderRuleRequest  true  "datos a actualizar"
// @Success      200   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorder-rules/{id} [put]
func (h *RuleHandler) Update(c *fiber.Ctx) error {
	var in dto.ReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), ruleInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReorderRuleResponse(r))
}

// Toggle godoc
// @Summary      Habilitar o deshabilitar una regla
// @Description  Una regla deshabilitada queda excluida del siguiente barrido.
// @Tags         reorder-rules
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la regla"
// @Param        body  body  dto.ToggleRuleRequest  true  "enabled"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorder-rules/{id}/toggle [patch]
func (h *RuleHandler) Toggle(c *fiber.Ctx) error {
	var in dto.ToggleRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Toggle(c.Context(), GetCompanyID(c), c.Params("id"), in.Enabled); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "regla actualizada"})
}

// Delete godoc
// @Summary      Eliminar regla de reposición
// @Tags         reorder-rules
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorder-rules/{id} [delete]
func (h *RuleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "regla eliminada"})
}

// GetByID godoc
// @Summary      Obtener regla por ID
// @Tags         reorder-rules
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      200  {object}  dto.ReorderRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorder-rules/{id} [get]
func (h *RuleHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReorderRuleResponse(r))
}

// GetByProduct godoc
// @Summary      Obtener la regla habilitada de un producto
// @Tags         reorder-rules
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReorderRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorder-rules/product/{productId} [get]
func (h *RuleHandler) GetByProduct(c *fiber.Ctx) error {
	r, err := h.uc.GetByProduct(c.Context(), GetCompanyID(c), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReorderRuleResponse(r))
}

// List godoc
// @Summary      Listar reglas de reposición
// @Tags         reorder-rules
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ReorderRuleResponse
// @Router       /api/reorder-rules [get]
func (h *RuleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByCompany(c.Context(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReorderRuleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToReorderRuleResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "rules": out})
}

func ruleInput(in dto.ReorderRuleRequest) rule.Input {
	return rule.Input{
		ProductID:        in.ProductID,
		ProviderID:       in.ProviderID,
		TriggerStock:     in.TriggerStock,
		ReorderQuantity:  in.ReorderQuantity,
		RequiresApproval: in.RequiresApproval,
		Enabled:          in.Enabled,
	}
}
