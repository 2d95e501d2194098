package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"asistenciapp_backend/internals/configs"
)

// El token de sesión dura 2 horas
const AccessTokenTTL = 2 * time.Hour

// CreateAccessToken firma un JWT HS256 con id y role del usuario
func CreateAccessToken(userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID.String(),
		"role": role,
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// GetRawAccessToken extrae el token del header "Authorization: Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// ParseAccessToken verifica firma y devuelve los claims (sin validar exp aquí)
func ParseAccessToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}
