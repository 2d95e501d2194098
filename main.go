package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"asistenciapp_backend/internals/configs"
	database "asistenciapp_backend/internals/databases"
	attendanceModel "asistenciapp_backend/internals/features/attendance/model"
	documentModel "asistenciapp_backend/internals/features/documents/model"
	eventModel "asistenciapp_backend/internals/features/events/model"
	notificationModel "asistenciapp_backend/internals/features/notifications/model"
	scheduler "asistenciapp_backend/internals/features/notifications/scheduler"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	userModel "asistenciapp_backend/internals/features/users/user/model"
	middlewares "asistenciapp_backend/internals/middlewares"
	routes "asistenciapp_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON rápido
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		// subidas multipart (imágenes de rostro y documentos, 5 MB + margen)
		BodyLimit:   10 * 1024 * 1024,
		ProxyHeader: fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware base + rendimiento
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool
	database.ConnectDB()
	database.TunePool()

	if err := database.DB.AutoMigrate(
		&userModel.UserModel{},
		&eventModel.EventModel{},
		&attendanceModel.AttendanceModel{},
		&notificationModel.NotificationModel{},
		&documentModel.DocumentModel{},
	); err != nil {
		log.Fatalf("❌ Error en la migración: %v", err)
	}
	log.Println("✅ Migración completada.")

	// 📣 worker de notificaciones
	dispatcher := notifService.NewDispatcher(database.DB)
	dispatcher.Start()

	// ⏱ scheduler después de que la DB esté lista
	cronJobs := scheduler.StartNotificationScheduler(database.DB)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, dispatcher)

	// 🔒 timeouts del servidor
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", configs.AppPort)
		if err := app.Listen("0.0.0.0:" + configs.AppPort); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: server → cron → cola de notificaciones → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	cronCtx := cronJobs.Stop()
	<-cronCtx.Done()

	dispatcher.Stop()

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
