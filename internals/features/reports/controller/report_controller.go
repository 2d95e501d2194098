package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	attendanceCtrl "asistenciapp_backend/internals/features/attendance/controller"
	"asistenciapp_backend/internals/features/reports/service"
	helper "asistenciapp_backend/internals/helpers"
)

// Encabezados compartidos por los tres formatos de exportación
var reportHeaders = []string{"Usuario", "Email", "Evento", "Fecha de asistencia", "Verificado facial"}

const reportDateLayout = "02/01/2006 15:04"

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// 🟢 GET /api/reports/attendance.xlsx?eventId=&startDate=&endDate=
func (ctrl *ReportController) ExportExcel(c *fiber.Ctx) error {
	rows, ok, err := ctrl.fetchRows(c)
	if !ok {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Asistencias"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return ctrl.renderError(c, err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "E", 24)

	for i, row := range rows {
		values := []interface{}{
			row.UserName,
			row.UserEmail,
			row.EventName,
			row.Date.Format(reportDateLayout),
			service.VerifiedLabel(row.Verified),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctrl.renderError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="asistencias.xlsx"`)
	return c.Send(buf.Bytes())
}

// 🟢 GET /api/reports/attendance.pdf?eventId=&startDate=&endDate=
func (ctrl *ReportController) ExportPDF(c *fiber.Ctx) error {
	rows, ok, err := ctrl.fetchRows(c)
	if !ok {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("Reporte de Asistencias"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado el %s", time.Now().Format(reportDateLayout))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{60, 70, 70, 45, 32}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range reportHeaders {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, row := range rows {
		pdf.SetFillColor(240, 240, 240)
		cells := []string{
			row.UserName,
			row.UserEmail,
			row.EventName,
			row.Date.Format(reportDateLayout),
			service.VerifiedLabel(row.Verified),
		}
		for i, v := range cells {
			pdf.CellFormat(widths[i], 7, tr(v), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return ctrl.renderError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="asistencias.pdf"`)
	return c.Send(buf.Bytes())
}

// 🟢 GET /api/reports/attendance.csv?eventId=&startDate=&endDate=
func (ctrl *ReportController) ExportCSV(c *fiber.Ctx) error {
	rows, ok, err := ctrl.fetchRows(c)
	if !ok {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportHeaders); err != nil {
		return ctrl.renderError(c, err)
	}
	for _, row := range rows {
		record := []string{
			row.UserName,
			row.UserEmail,
			row.EventName,
			row.Date.Format(reportDateLayout),
			service.VerifiedLabel(row.Verified),
		}
		if err := w.Write(record); err != nil {
			return ctrl.renderError(c, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ctrl.renderError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="asistencias.csv"`)
	return c.Send(buf.Bytes())
}

// fetchRows resuelve filtro y filas; si algo falla, responde él mismo y
// el handler solo devuelve el error de escritura (nil en el caso normal).
func (ctrl *ReportController) fetchRows(c *fiber.Ctx) ([]service.Row, bool, error) {
	filter, err := attendanceCtrl.ParseFilter(c)
	if err != nil {
		return nil, false, helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rows, err := service.FetchRows(ctrl.DB, filter)
	if err != nil {
		log.Printf("[ERROR] Error al proyectar el reporte: %v", err)
		return nil, false, helper.JsonError(c, fiber.StatusInternalServerError, "Error al generar el reporte")
	}
	return rows, true, nil
}

func (ctrl *ReportController) renderError(c *fiber.Ctx, err error) error {
	log.Printf("[ERROR] Error al renderizar el reporte: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Error al generar el reporte")
}
