package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/replenish"
)

// ReplenishHandler expone la corrida bajo demanda del barrido de reposición.
type ReplenishHandler struct {
	sweep *replenish.SweepUseCase
}

// NewReplenishHandler construye el handler.
func NewReplenishHandler(sweep *replenish.SweepUseCase) *ReplenishHandler {
	return &ReplenishHandler{sweep: sweep}
}

// RunSweep godoc
// @Summary      Ejecutar barrido de reposición bajo demanda
// @Description  Evalúa todas las reglas habilitadas del tenant y crea una orden
//               candidata por proveedor con productos bajo umbral. Si ya hay un
//               barrido corriendo responde 409.
// @Tags         replenishment
// @Produce      json
// @Success      200  {object}  replenish.Summary
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/replenishment/sweep [post]
func (h *ReplenishHandler) RunSweep(c *fiber.Ctx) error {
	summary, err := h.sweep.Run(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
