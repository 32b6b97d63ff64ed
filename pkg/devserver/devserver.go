// Package devserver runs a local stand-in for the hosted workflow automation
// service. It exposes the same endpoints and payload shapes the real API
// speaks so the builder can be developed and exercised offline, with
// workflows stored through the persistence layer and test runs simulated
// instead of executed.
package devserver

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/chatforge/flowbuilder/pkg/persistence"
)

type Server struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	validate    *validator.Validate
}

func NewServer(logger *slog.Logger, p persistence.Persistence) *Server {
	return &Server{
		logger:      logger,
		persistence: p,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Server) App() *fiber.App {
	h := newHandlers(s.persistence, s.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("FlowBuilder dev API")
	})

	w := app.Group("/api/automation/workflows")
	w.Get("/", h.ListWorkflows)
	w.Post("/", h.CreateWorkflow)
	w.Post("/test", h.TestWorkflow)
	w.Get("/:id", h.GetWorkflow)
	w.Put("/:id", h.UpdateWorkflow)
	w.Delete("/:id", h.DeleteWorkflow)

	app.Get("/health", h.HealthCheck)

	return app
}

func (s *Server) Start(port int) error {
	s.logger.Info("Starting dev API", "port", port)

	return s.App().Listen(":" + strconv.Itoa(port))
}
