package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/atp-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/atp-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "atp-api-test"
)

// tokenForRole devuelve el header Authorization de un usuario de la empresa de prueba.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return signedHeader(t, testJWTSecret, role, time.Hour)
}

func signedHeader(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Sign(secret, pkgjwt.Principal{UserID: testUserID, CompanyID: testCompanyID, Role: role}, testIssuer, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{"admin en ruta de admin", []string{"admin"}, func(t *testing.T) string { return tokenForRole(t, "admin") }, 200, ""},
		{"bodeguero en ruta de personal de bodega", []string{"admin", "bodeguero"}, func(t *testing.T) string { return tokenForRole(t, "bodeguero") }, 200, ""},
		{"vendedor en ruta de admin", []string{"admin"}, func(t *testing.T) string { return tokenForRole(t, "vendedor") }, 403, "FORBIDDEN"},
		{"vendedor en movimientos de bodega", []string{"admin", "bodeguero"}, func(t *testing.T) string { return tokenForRole(t, "vendedor") }, 403, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, func(t *testing.T) string { return tokenForRole(t, "") }, 401, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, func(*testing.T) string { return "" }, 401, "MISSING_TOKEN"},
		{"sin esquema Bearer", []string{"admin"}, func(*testing.T) string { return "Token abc" }, 401, "INVALID_TOKEN"},
		{"token malformado", []string{"admin"}, func(*testing.T) string { return "Bearer token.invalido.aqui" }, 401, "INVALID_TOKEN"},
		{"token expirado", []string{"admin"}, func(t *testing.T) string { return signedHeader(t, testJWTSecret, "admin", -time.Minute) }, 401, "INVALID_TOKEN"},
		{"firmado con otro secreto", []string{"admin"}, func(t *testing.T) string { return signedHeader(t, "otro-secreto", "admin", time.Hour) }, 401, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected",
				apphttp.AuthMiddleware(testJWTSecret),
				apphttp.RequireRole(tc.allowed...),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.code)
			}
		})
	}
}

func TestAuthMiddleware_CargaLaIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "bodeguero", body["role"])
}
