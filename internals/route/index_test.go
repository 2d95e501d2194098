package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asistenciapp_backend/internals/configs"
	attendanceModel "asistenciapp_backend/internals/features/attendance/model"
	eventModel "asistenciapp_backend/internals/features/events/model"
	notificationModel "asistenciapp_backend/internals/features/notifications/model"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	userModel "asistenciapp_backend/internals/features/users/user/model"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	configs.JWTSecret = "secreto-de-prueba"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&eventModel.EventModel{},
		&attendanceModel.AttendanceModel{},
		&notificationModel.NotificationModel{},
	))

	dispatcher := notifService.NewDispatcher(db)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	app := fiber.New()
	SetupRoutes(app, db, dispatcher)
	return app, db
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "cuerpo: %s", body)
	return env
}

func jsonRequest(method, path, token string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func multipartRequest(t *testing.T, method, path, token string, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) *userModel.UserModel {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := userModel.UserModel{
		Name:     "Admin de Prueba",
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/users/login", "", fiber.Map{
		"email":    email,
		"password": password,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

// Flujo completo: registro, login, evento, asistencia, duplicado, listado
func TestEndToEndAttendanceFlow(t *testing.T) {
	app, db := newTestApp(t)

	// registro de un usuario normal
	resp, err := app.Test(multipartRequest(t, fiber.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "María López",
		"email":    "maria@example.com",
		"password": "secreto123",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "Usuario registrado exitosamente", env.Message)

	// login con contraseña incorrecta: 401 genérico
	resp, err = app.Test(jsonRequest(fiber.MethodPost, "/api/users/login", "", fiber.Map{
		"email":    "maria@example.com",
		"password": "incorrecta",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, "Credenciales inválidas", env.Message)

	// mismo 401 para un email inexistente (sin enumeración de usuarios)
	resp, err = app.Test(jsonRequest(fiber.MethodPost, "/api/users/login", "", fiber.Map{
		"email":    "nadie@example.com",
		"password": "loquesea",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, "Credenciales inválidas", env.Message)

	userToken := login(t, app, "maria@example.com", "secreto123")

	// un usuario normal no puede crear eventos
	resp, err = app.Test(jsonRequest(fiber.MethodPost, "/api/events", userToken, fiber.Map{
		"name": "Evento ilegítimo",
		"date": "2026-10-01",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// el admin sí
	seedAdmin(t, db, "admin@example.com", "clave-admin")
	adminToken := login(t, app, "admin@example.com", "clave-admin")

	resp, err = app.Test(jsonRequest(fiber.MethodPost, "/api/events", adminToken, fiber.Map{
		"name":        "Jornada de Inducción",
		"description": "Auditorio principal",
		"date":        time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, "Evento creado", env.Message)

	var event struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &event))
	require.NotEmpty(t, event.ID)

	// asistencia simple
	resp, err = app.Test(jsonRequest(fiber.MethodPost, "/api/events/"+event.ID+"/attend", userToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, "Asistencia registrada correctamente", env.Message)

	// el segundo intento choca con el invariante
	resp, err = app.Test(jsonRequest(fiber.MethodPost, "/api/events/"+event.ID+"/attend", userToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, "Ya has registrado tu asistencia a este evento", env.Message)

	// el evento aparece en el historial del usuario
	resp, err = app.Test(jsonRequest(fiber.MethodGet, "/api/attendance/events", userToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp)

	var attended []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &attended))
	require.Len(t, attended, 1)
	assert.Equal(t, event.ID, attended[0].ID)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/events", "/api/attendance", "/api/notifications", "/api/users"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "ruta %s", path)
	}
}

func TestReportsAreAdminOnly(t *testing.T) {
	app, db := newTestApp(t)

	seedAdmin(t, db, "admin@example.com", "clave-admin")
	adminToken := login(t, app, "admin@example.com", "clave-admin")

	resp, err := app.Test(multipartRequest(t, fiber.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "Pedro Díaz",
		"email":    "pedro@example.com",
		"password": "secreto123",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	userToken := login(t, app, "pedro@example.com", "secreto123")

	resp, err = app.Test(jsonRequest(fiber.MethodGet, "/api/reports/attendance.csv", userToken, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest(fiber.MethodGet, "/api/reports/attendance.csv", adminToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Usuario,Email,Evento"), "cabecera CSV: %s", body)
}
