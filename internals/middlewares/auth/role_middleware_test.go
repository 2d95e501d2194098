package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistenciapp_backend/internals/constants"
)

func newRoleTestApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user_id", "11111111-1111-1111-1111-111111111111")
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Get("/admin-only",
		OnlyRoles("Solo un administrador puede entrar", constants.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Put("/users/:id",
		SelfOrAdmin("id"),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	return resp
}

func TestOnlyRolesAllowsAdmin(t *testing.T) {
	app := newRoleTestApp(constants.RoleAdmin)
	resp := doRequest(t, app, fiber.MethodGet, "/admin-only")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOnlyRolesForbidsUser(t *testing.T) {
	app := newRoleTestApp(constants.RoleUser)
	resp := doRequest(t, app, fiber.MethodGet, "/admin-only")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOnlyRolesUnauthenticated(t *testing.T) {
	app := newRoleTestApp("")
	resp := doRequest(t, app, fiber.MethodGet, "/admin-only")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSelfOrAdminAllowsSelf(t *testing.T) {
	app := newRoleTestApp(constants.RoleUser)
	resp := doRequest(t, app, fiber.MethodPut, "/users/11111111-1111-1111-1111-111111111111")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSelfOrAdminForbidsOtherUser(t *testing.T) {
	app := newRoleTestApp(constants.RoleUser)
	resp := doRequest(t, app, fiber.MethodPut, "/users/22222222-2222-2222-2222-222222222222")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSelfOrAdminAllowsAdminOnAnyUser(t *testing.T) {
	app := newRoleTestApp(constants.RoleAdmin)
	resp := doRequest(t, app, fiber.MethodPut, "/users/22222222-2222-2222-2222-222222222222")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
