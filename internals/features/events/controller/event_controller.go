package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/events/dto"
	"asistenciapp_backend/internals/features/events/model"
	helper "asistenciapp_backend/internals/helpers"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// 🟢 POST /api/events (solo admin)
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición no válido")
	}

	date, err := req.ParseDate()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "La fecha del evento no es válida")
	}

	organizerID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}

	event := model.EventModel{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		OrganizerID: organizerID,
	}
	if err := event.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Create(&event).Error; err != nil {
		log.Printf("[ERROR] Error al crear evento: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear el evento")
	}

	return helper.JsonCreated(c, "Evento creado", dto.ToEventResponse(&event))
}

// 🟢 GET /api/events (fecha descendente, organizador y asistentes expandidos)
func (ctrl *EventController) GetEvents(c *fiber.Ctx) error {
	var events []model.EventModel
	if err := ctrl.DB.
		Preload("Organizer").
		Preload("Attendees").
		Order("date DESC").
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] Error al listar eventos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener los eventos")
	}
	return helper.JsonList(c, "ok", dto.ToEventResponseList(events))
}
