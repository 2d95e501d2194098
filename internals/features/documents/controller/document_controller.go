package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	"asistenciapp_backend/internals/features/documents/dto"
	"asistenciapp_backend/internals/features/documents/model"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	helper "asistenciapp_backend/internals/helpers"
)

// Límite de subida: 5 MB, igual que las imágenes
const maxDocumentSize = 5 * 1024 * 1024

type DocumentController struct {
	DB     *gorm.DB
	Notify *notifService.Dispatcher
}

func NewDocumentController(db *gorm.DB, notify *notifService.Dispatcher) *DocumentController {
	return &DocumentController{DB: db, Notify: notify}
}

// 🟢 POST /api/documents (multipart: file, title, tags?)
func (ctrl *DocumentController) Upload(c *fiber.Ctx) error {
	uploaderID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Archivo no proporcionado")
	}
	if fileHeader.Size > maxDocumentSize {
		return helper.JsonError(c, fiber.StatusBadRequest, "El archivo supera el tamaño máximo de 5MB")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Error al abrir el archivo")
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al leer el archivo")
	}

	title := c.FormValue("title")
	if title == "" {
		title = fileHeader.Filename
	}

	contentType := mimetype.Detect(buf.Bytes()).String()
	meta, _ := json.Marshal(fiber.Map{
		"original_filename": fileHeader.Filename,
		"declared_type":     fileHeader.Header.Get("Content-Type"),
		"detected_type":     contentType,
	})

	doc := model.DocumentModel{
		Title:       title,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        int64(buf.Len()),
		Data:        buf.Bytes(),
		Meta:        datatypes.JSON(meta),
		UploadedBy:  uploaderID,
	}
	if raw := c.FormValue("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				doc.Tags = append(doc.Tags, t)
			}
		}
	}

	if err := ctrl.DB.Create(&doc).Error; err != nil {
		log.Printf("[ERROR] Error al guardar documento: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al guardar el documento")
	}

	ctrl.Notify.DocumentUploaded(doc.Title, doc.ID, uploaderID)

	return helper.JsonCreated(c, "Documento subido exitosamente", dto.ToDocumentResponse(&doc))
}

// 🟢 GET /api/documents — solo metadatos
func (ctrl *DocumentController) List(c *fiber.Ctx) error {
	var docs []model.DocumentModel
	if err := ctrl.DB.
		Select("id", "title", "file_name", "content_type", "size", "tags", "uploaded_by", "created_at").
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		log.Printf("[ERROR] Error al listar documentos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener los documentos")
	}
	return helper.JsonList(c, "ok", dto.ToDocumentResponseList(docs))
}

// 🟢 GET /api/documents/:id/download
func (ctrl *DocumentController) Download(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de documento no válido")
	}

	var doc model.DocumentModel
	if err := ctrl.DB.First(&doc, "id = ?", docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Documento no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener el documento")
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Send(doc.Data)
}

// 🟢 DELETE /api/documents/:id — dueño o admin
func (ctrl *DocumentController) Delete(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de documento no válido")
	}

	var doc model.DocumentModel
	if err := ctrl.DB.Select("id", "uploaded_by").First(&doc, "id = ?", docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Documento no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener el documento")
	}

	actorID, _ := c.Locals("user_id").(string)
	actorRole, _ := c.Locals("user_role").(string)
	if actorRole != constants.RoleAdmin && actorID != doc.UploadedBy.String() {
		return helper.JsonError(c, fiber.StatusForbidden, "Solo puedes eliminar tus propios documentos")
	}

	if err := ctrl.DB.Delete(&model.DocumentModel{}, "id = ?", docID).Error; err != nil {
		log.Printf("[ERROR] Error al eliminar documento: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar el documento")
	}
	return helper.JsonDeleted(c, "Documento eliminado", nil)
}
