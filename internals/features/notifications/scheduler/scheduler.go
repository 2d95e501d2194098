package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/notifications/service"
)

// StartNotificationScheduler programa los barridos periódicos:
// recordatorios diarios de eventos próximos y purga de notificaciones vencidas.
func StartNotificationScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	// recordatorios a las 08:00
	if _, err := c.AddFunc("0 8 * * *", func() {
		n, err := service.SendUpcomingEventReminders(db)
		if err != nil {
			log.Printf("[ERROR] recordatorios de eventos: %v", err)
			return
		}
		log.Printf("[CLEANUP] %d eventos próximos notificados", n)
	}); err != nil {
		log.Printf("[ERROR] no se pudo programar los recordatorios: %v", err)
	}

	// purga de vencidas cada hora
	if _, err := c.AddFunc("@hourly", func() {
		n, err := service.PurgeExpired(db)
		if err != nil {
			log.Printf("[ERROR] purga de notificaciones: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CLEANUP] %d notificaciones vencidas eliminadas", n)
		}
	}); err != nil {
		log.Printf("[ERROR] no se pudo programar la purga: %v", err)
	}

	c.Start()
	return c
}
