package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/dto"
)

// Locals keys para UserID y CompanyID en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
)

// Headers de identidad. La autenticación corre por fuera de este servicio
// (gateway); aquí solo se exige el tenant y, donde aplica, el actor.
const (
	HeaderCompanyID = "X-Company-ID"
	HeaderUserID    = "X-User-ID"
)

// TenantMiddleware exige el header X-Company-ID y lo expone en c.Locals.
// X-User-ID es opcional: lo exigen los casos de uso que requieren actor.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Get(HeaderCompanyID)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_TENANT", Message: "header X-Company-ID requerido",
			})
		}
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalUserID, c.Get(HeaderUserID))
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de tenant).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de tenant).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
