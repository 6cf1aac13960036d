package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Compras-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

// buildTestApp construye una aplicación Fiber mínima con el TenantMiddleware
// y un handler dummy que devuelve los locals cargados.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.TenantMiddleware(), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"company_id": apphttp.GetCompanyID(c),
			"user_id":    apphttp.GetUserID(c),
		})
	})
	return app
}

// doRequest lanza una petición GET /protected con los headers de tenant.
func doRequest(t *testing.T, app *fiber.App, companyID, userID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if companyID != "" {
		req.Header.Set(apphttp.HeaderCompanyID, companyID)
	}
	if userID != "" {
		req.Header.Set(apphttp.HeaderUserID, userID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TenantMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Con X-Company-ID → pasa y los locals quedan cargados.
func TestTenantMiddleware_CargaLocals(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, testCompanyID, testUserID)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, testUserID, body["user_id"])
}

// Caso 2: Sin X-Company-ID → HTTP 401 MISSING_TENANT.
func TestTenantMiddleware_SinCompanyID_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "", testUserID)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TENANT",
		"la respuesta de error debe incluir el código MISSING_TENANT")
}

// Caso 3: X-User-ID es opcional; sin él la petición pasa igual.
func TestTenantMiddleware_UserIDOpcional(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, testCompanyID, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["user_id"])
}
