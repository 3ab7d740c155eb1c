package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/pos-ventas/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/pos-ventas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "pos-ventas-test"
	testExpMin    = 60
)

// buildAuthApp construye una aplicación Fiber mínima con el middleware de auth
// y un handler que devuelve el user_id extraído del token.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})
	return app
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Token válido: pasa y el handler recibe el user_id del claim.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildAuthApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

// Sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Header sin esquema Bearer → 401.
func TestAuthMiddleware_EsquemaInvalido(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token malformado → 401.
func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token expirado → 401.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildAuthApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token firmado con otro secret → 401.
func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	app := buildAuthApp()
	tok, err := pkgjwt.Generate("otro-secret-distinto", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestJWT_SecretVacioRechazado(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testIssuer, testExpMin)
	assert.Error(t, err)
}
