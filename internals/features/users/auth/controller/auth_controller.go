package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authService "asistenciapp_backend/internals/features/users/auth/service"
	"asistenciapp_backend/internals/features/users/user/dto"
	"asistenciapp_backend/internals/features/users/user/model"
	helper "asistenciapp_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// 🟢 POST /api/users/login
// Email desconocido y contraseña incorrecta devuelven el mismo 401
// para no permitir enumerar usuarios.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición no válido")
	}
	if req.Email == "" || req.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email y contraseña son requeridos")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		log.Printf("[ERROR] DB en login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	return ctrl.issueSession(c, &user)
}

// 🟢 POST /api/users/login-facial (multipart: faceImage)
func (ctrl *AuthController) LoginFacial(c *fiber.Ctx) error {
	raw, err := helper.ReadFaceImage(c, "faceImage")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	normalized, err := helper.NormalizeFaceImage(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authService.FindUserByFaceImage(ctrl.DB, normalized)
	if err != nil {
		if errors.Is(err, authService.ErrNoFaceMatch) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No coincide ninguna imagen registrada")
		}
		log.Printf("[ERROR] DB en login facial: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return ctrl.issueSession(c, user)
}

func (ctrl *AuthController) issueSession(c *fiber.Ctx, user *model.UserModel) error {
	token, err := helper.CreateAccessToken(user.ID, user.Role)
	if err != nil {
		log.Printf("[ERROR] Error al firmar token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al generar el token")
	}

	return helper.JsonOK(c, "Inicio de sesión exitoso", fiber.Map{
		"token": token,
		"user":  dto.ToUserResponse(user),
	})
}
