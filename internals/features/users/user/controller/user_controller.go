package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	"asistenciapp_backend/internals/features/users/user/dto"
	"asistenciapp_backend/internals/features/users/user/model"
	helper "asistenciapp_backend/internals/helpers"
)

type UserController struct {
	DB     *gorm.DB
	Notify *notifService.Dispatcher
}

func NewUserController(db *gorm.DB, notify *notifService.Dispatcher) *UserController {
	return &UserController{DB: db, Notify: notify}
}

// 🟢 POST /api/users/register (multipart: name, email, password, faceImage?)
func (ctrl *UserController) Register(c *fiber.Ctx) error {
	user := model.UserModel{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	if err := user.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al cifrar la contraseña")
	}
	user.Password = string(hashed)

	// Imagen de rostro opcional; se guarda ya normalizada (forma canónica)
	raw, err := helper.ReadFaceImage(c, "faceImage")
	switch {
	case err == nil:
		normalized, nerr := helper.NormalizeFaceImage(raw)
		if nerr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, nerr.Error())
		}
		user.FaceImage = normalized
	case errors.Is(err, helper.ErrNoFaceImage):
		// registro sin rostro, válido
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "El email ya está registrado")
		}
		log.Printf("[ERROR] Error al crear usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al registrar el usuario")
	}

	ctrl.Notify.UserCreated(user.Name, user.ID)

	return helper.JsonCreated(c, "Usuario registrado exitosamente", dto.ToUserResponse(&user))
}

// 🟢 GET /api/users (solo admin)
func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("[ERROR] Error al listar usuarios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener los usuarios")
	}
	return helper.JsonList(c, "ok", dto.ToUserResponseList(users))
}

// 🟢 PUT /api/users/:id (self-or-admin; el rol solo lo cambia un admin)
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de usuario no válido")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición no válido")
	}

	var existing model.UserModel
	if err := ctrl.DB.First(&existing, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener el usuario")
	}

	actorRole, _ := c.Locals("user_role").(string)
	if actorRole != constants.RoleAdmin && req.Role != "" && req.Role != existing.Role {
		return helper.JsonError(c, fiber.StatusForbidden, "Solo un administrador puede cambiar el rol")
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if actorRole == constants.RoleAdmin && req.Role != "" {
		existing.Role = req.Role
	}

	if err := existing.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Save(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "El email ya está registrado")
		}
		log.Printf("[ERROR] Error al actualizar usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar el usuario")
	}

	return helper.JsonUpdated(c, "Usuario actualizado", dto.ToUserResponse(&existing))
}

// 🟢 DELETE /api/users/:id (self-or-admin)
// Los registros de asistencia conservan su referencia al usuario eliminado.
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de usuario no válido")
	}

	res := ctrl.DB.Delete(&model.UserModel{}, "id = ?", targetID)
	if res.Error != nil {
		log.Printf("[ERROR] Error al eliminar usuario: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar el usuario")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
	}

	return helper.JsonDeleted(c, "Usuario eliminado", nil)
}
