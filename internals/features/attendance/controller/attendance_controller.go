package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/attendance/dto"
	"asistenciapp_backend/internals/features/attendance/service"
	eventDto "asistenciapp_backend/internals/features/events/dto"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	authService "asistenciapp_backend/internals/features/users/auth/service"
	helper "asistenciapp_backend/internals/helpers"
)

type AttendanceController struct {
	DB     *gorm.DB
	Notify *notifService.Dispatcher
}

func NewAttendanceController(db *gorm.DB, notify *notifService.Dispatcher) *AttendanceController {
	return &AttendanceController{DB: db, Notify: notify}
}

// 🟢 POST /api/events/:id/attend — registro simple
func (ctrl *AttendanceController) Attend(c *fiber.Ctx) error {
	userID, eventID, err := ctrl.parseIDs(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := service.RegisterSimple(ctrl.DB, userID, eventID)
	if err != nil {
		return ctrl.registrationError(c, err)
	}

	ctrl.notifyRegistered(userID, eventID, record.Verified)

	return helper.JsonCreated(c, "Asistencia registrada correctamente", dto.ToAttendanceResponse(record))
}

// 🟢 POST /api/events/:id/attend-facial (multipart: faceImage)
// Si el rostro no coincide, el registro se crea igualmente con
// verified=false; el llamador se entera por el flag, no por un error.
func (ctrl *AttendanceController) AttendFacial(c *fiber.Ctx) error {
	userID, eventID, err := ctrl.parseIDs(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	probe, err := helper.ReadFaceImage(c, "faceImage")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := service.RegisterWithFace(ctrl.DB, userID, eventID, probe)
	if err != nil {
		return ctrl.registrationError(c, err)
	}

	ctrl.notifyRegistered(userID, eventID, record.Verified)

	return helper.JsonCreated(c, "Asistencia registrada correctamente", fiber.Map{
		"verified":   record.Verified,
		"attendance": dto.ToAttendanceResponse(record),
	})
}

// 🟢 POST /api/attendance/verify (kiosco, multipart: faceImage, event_id opcional)
func (ctrl *AttendanceController) VerifyStandalone(c *fiber.Ctx) error {
	probe, err := helper.ReadFaceImage(c, "faceImage")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Imagen de rostro no proporcionada")
	}

	var eventID *uuid.UUID
	if raw := c.FormValue("event_id"); raw != "" {
		parsed, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID de evento no válido")
		}
		eventID = &parsed
	}

	user, record, err := service.VerifyStandalone(ctrl.DB, probe, eventID)
	if err != nil {
		if errors.Is(err, authService.ErrNoFaceMatch) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return ctrl.registrationError(c, err)
	}

	if eventID != nil {
		ctrl.notifyRegistered(user.ID, *eventID, true)
	}

	return helper.JsonOK(c, "Asistencia verificada correctamente", fiber.Map{
		"user":       fiber.Map{"id": user.ID, "name": user.Name},
		"attendance": dto.ToAttendanceResponse(record),
	})
}

// 🟢 GET /api/attendance/events — eventos a los que asistió el usuario autenticado
func (ctrl *AttendanceController) GetUserEvents(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}

	events, err := service.ListEventsForUser(ctrl.DB, userID)
	if err != nil {
		log.Printf("[ERROR] Error al listar eventos del usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener los eventos")
	}
	return helper.JsonList(c, "ok", eventDto.ToEventResponseList(events))
}

// 🟢 GET /api/attendance?eventId=&startDate=&endDate=
func (ctrl *AttendanceController) GetAllAttendance(c *fiber.Ctx) error {
	filter, err := ParseFilter(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	records, err := service.ListAll(ctrl.DB, filter)
	if err != nil {
		log.Printf("[ERROR] Error al listar asistencias: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener las asistencias")
	}
	return helper.JsonList(c, "ok", dto.ToAttendanceResponseList(records))
}

// ParseFilter lee eventId/startDate/endDate de la query (lo comparte reports)
func ParseFilter(c *fiber.Ctx) (service.Filter, error) {
	var filter service.Filter

	if raw := c.Query("eventId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("ID de evento no válido")
		}
		filter.EventID = &id
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return filter, errors.New("startDate no válida")
		}
		filter.From = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return filter, errors.New("endDate no válida")
		}
		// incluir el día completo
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}
	return filter, nil
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (ctrl *AttendanceController) parseIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("no autenticado")
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("ID de evento no válido")
	}
	return userID, eventID, nil
}

func (ctrl *AttendanceController) registrationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
	case errors.Is(err, service.ErrAlreadyRegistered):
		return helper.JsonError(c, fiber.StatusConflict, "Ya has registrado tu asistencia a este evento")
	case errors.Is(err, service.ErrNoReferenceImage):
		return helper.JsonError(c, fiber.StatusBadRequest, "No tienes imagen de rostro registrada")
	case errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, helper.ErrImageUndecodable):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] Error al registrar asistencia: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al registrar la asistencia")
	}
}

// La notificación es fire-and-forget: su fallo nunca afecta al registro
func (ctrl *AttendanceController) notifyRegistered(userID, eventID uuid.UUID, verified bool) {
	eventName := ""
	var event struct{ Name string }
	if err := ctrl.DB.Table("events").Select("name").Where("id = ?", eventID).Scan(&event).Error; err == nil {
		eventName = event.Name
	}
	ctrl.Notify.AttendanceRegistered(userID, eventID, eventName, verified)
}
