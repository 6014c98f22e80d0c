package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/talentgate/portal/finaid/bursary/bursaryapi"
	"github.com/talentgate/portal/notification/notificationapi"
	"github.com/talentgate/portal/pkg/config"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/logx"
	"github.com/talentgate/portal/recruitment/application/applicationapi"
	"github.com/talentgate/portal/recruitment/interview/interviewapi"
	"github.com/talentgate/portal/recruitment/subscriber/subscriberapi"
	"github.com/talentgate/portal/recruitment/vacancy/vacancyapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("failed to load configuration: %v", err)
	}

	logx.Init(cfg.Log.Level, cfg.Log.Format)
	logx.Info("Starting TalentGate Portal API Server...")

	container := NewContainer(cfg)
	defer container.Close()

	app := fiber.New(fiber.Config{
		AppName:               "TalentGate Portal API",
		DisableStartupMessage: true,
		BodyLimit:             10 * 1024 * 1024, // uploads go through multipart forms
		ErrorHandler:          globalErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// Recruitment: /api/vacancies, /api/applications, /api/interviews, /api/subscribers
	vacancyapi.RegisterRoutes(app, container.VacancyHandlers, container.AuthMiddleware)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)
	interviewapi.RegisterRoutes(app, container.InterviewHandlers, container.AuthMiddleware)
	subscriberapi.RegisterRoutes(app, container.SubscriberHandlers, container.AuthMiddleware)

	// Financial assistance: /api/bursaries
	bursaryapi.RegisterRoutes(app, container.BursaryHandlers, container.AuthMiddleware)

	// Staff notifications: /api/notifications
	notificationapi.RegisterRoutes(app, container.NotificationHandlers, container.AuthMiddleware)

	// Delivery workers drain the Redis queue until shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.Worker.Start(workerCtx)

	// The WebSocket hub listens on its own port; Fiber's fasthttp server
	// cannot hand a hijacked connection to gorilla/websocket.
	wsServer := &http.Server{
		Addr:    ":" + cfg.Server.WSPort,
		Handler: container.Hub,
	}
	go func() {
		logx.Infof("WebSocket hub listening on port %s", cfg.Server.WSPort)
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatalf("WebSocket server error: %v", err)
		}
	}()

	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	stopWorkers()

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	if err := wsServer.Shutdown(context.Background()); err != nil {
		logx.Errorf("WebSocket server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
