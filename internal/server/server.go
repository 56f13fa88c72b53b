package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harshit001122/Tracking-system/internal/config"
	"github.com/harshit001122/Tracking-system/internal/employee"
	"github.com/harshit001122/Tracking-system/internal/meeting"
	"github.com/harshit001122/Tracking-system/internal/metrics"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"
	"github.com/harshit001122/Tracking-system/internal/shared/idgen"
	"github.com/harshit001122/Tracking-system/internal/stream"
	"github.com/harshit001122/Tracking-system/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Stream    *stream.Hub
	Tracking  *tracking.Service
	Meetings  *meeting.Service
	Employees *employee.Service
}

// NewServer builds the application. db and redisClient are optional; without
// them the audit mirror and cross-instance streaming are off.
func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	metrics.Register()

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   hub,
		Tracking: tracking.NewService(tracking.NewStore(idgen.NewSequence("session")), hub),
		Meetings: meeting.NewService(
			meeting.NewStore(idgen.NewSequence("meeting"), idgen.NewSequence("history")),
			newAuditSink(db),
		),
		Employees: employee.NewService(
			employee.NewHTTPDirectory(cfg.DirectoryURL, cfg.DirectoryTimeout, cfg.DirectoryRPS),
			employee.NewPresence(nil),
		),
	}

	registerRoutes(s)
	return s
}

// newAuditSink returns nil when no database is configured, so the meeting
// service never sees a typed nil.
func newAuditSink(db *pgxpool.Pool) meeting.AuditSink {
	if db == nil {
		return nil
	}
	audit := meeting.NewPostgresAudit(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := audit.EnsureSchema(ctx); err != nil {
		slog.Warn("audit schema unavailable", "error", err)
	}
	return audit
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", metrics.Handler())

	api := s.App.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "pong",
			"timestamp": clock.ISO(clock.Now()),
			"status":    "ok",
		})
	})

	employee.RegisterRoutes(api.Group("/employees"), s.Employees)
	meeting.RegisterRoutes(api.Group("/meetings"), s.Meetings)
	meeting.RegisterHistoryRoutes(api.Group("/meeting-history"), s.Meetings)
	tracking.RegisterRoutes(api.Group("/tracking-sessions"), s.Tracking)
	stream.RegisterRoutes(api.Group("/stream"), s.Stream)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
