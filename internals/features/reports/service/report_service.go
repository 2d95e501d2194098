package service

import (
	"time"

	"gorm.io/gorm"

	attendanceService "asistenciapp_backend/internals/features/attendance/service"
)

// Row es una fila del reporte de asistencias, ya aplanada para exportar
type Row struct {
	UserName  string
	UserEmail string
	EventName string
	Date      time.Time
	Verified  bool
}

// FetchRows proyecta el ledger de asistencias según el filtro.
// Solo lectura; los usuarios eliminados salen como "N/A".
func FetchRows(db *gorm.DB, filter attendanceService.Filter) ([]Row, error) {
	records, err := attendanceService.ListAll(db, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for i := range records {
		r := Row{
			UserName:  "N/A",
			UserEmail: "N/A",
			EventName: "N/A",
			Date:      records[i].CreatedAt,
			Verified:  records[i].Verified,
		}
		if records[i].User != nil {
			r.UserName = records[i].User.Name
			r.UserEmail = records[i].User.Email
		}
		if records[i].Event != nil {
			r.EventName = records[i].Event.Name
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// VerifiedLabel formatea el flag como en el reporte original
func VerifiedLabel(verified bool) string {
	if verified {
		return "Sí"
	}
	return "No"
}
