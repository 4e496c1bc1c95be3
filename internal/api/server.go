// Package api serves the habit service over HTTP with Fiber.
package api

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"

	"github.com/julianstephens/habitual/internal/auth"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/service"
)

type Config struct {
	Addr        string
	CORSOrigins string
	// AuthRateLimit is the number of signup/login attempts allowed per IP
	// per minute. Zero disables the limiter.
	AuthRateLimit int
	// RedisAddr, when set, keeps rate limit counters in Redis so they are
	// shared between instances.
	RedisAddr string
}

func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		CORSOrigins:   "http://localhost:3000,http://localhost:5173",
		AuthRateLimit: 5,
	}
}

type Server struct {
	cfg     Config
	app     *fiber.App
	habits  *service.Service
	auth    *auth.Service
	limits  *redis.Storage
	started time.Time
}

func New(cfg Config, habits *service.Service, authSvc *auth.Service) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		habits:  habits,
		auth:    authSvc,
		started: time.Now(),
	}

	if cfg.RedisAddr != "" {
		storage, err := newRedisStorage(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		s.limits = storage
	}

	s.app = fiber.New(fiber.Config{
		AppName:               constants.AppName,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(requestLogger())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	s.routes()
	return s, nil
}

func newRedisStorage(addr string) (*redis.Storage, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis port %q: %w", portStr, err)
	}
	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		PoolSize: 10,
	}), nil
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", s.authLimiter(), s.signup)
	authRoutes.Post("/login", s.authLimiter(), s.login)
	authRoutes.Post("/refresh", s.refresh)
	authRoutes.Get("/me", requireAuth(s.auth.Tokens()), s.me)

	habits := api.Group("/habits", requireAuth(s.auth.Tokens()))
	habits.Get("/", s.listHabits)
	habits.Post("/", s.createHabit)
	habits.Get("/due", s.dueHabits)
	habits.Get("/:id", s.getHabit)
	habits.Put("/:id", s.updateHabit)
	habits.Delete("/:id", s.deleteHabit)
	habits.Post("/:id/complete", s.toggleCompletion)
	habits.Get("/:id/completions", s.listCompletions)
	habits.Get("/:id/stats", s.habitStats)
	habits.Get("/:id/schedule", s.habitSchedule)

	api.Get("/analytics", requireAuth(s.auth.Tokens()), s.analytics)
}

func (s *Server) authLimiter() fiber.Handler {
	if s.cfg.AuthRateLimit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	cfg := limiter.Config{
		Max:        s.cfg.AuthRateLimit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many attempts. Please try again later.",
			})
		},
	}
	if s.limits != nil {
		cfg.Storage = s.limits
	}
	return limiter.New(cfg)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC(),
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on the configured address.
func (s *Server) Listen() error {
	logger.Info("Starting HTTP server", "addr", s.cfg.Addr, "redis", s.limits != nil)
	err := s.app.Listen(s.cfg.Addr)
	if err != nil && strings.Contains(err.Error(), "server closed") {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	if s.limits != nil {
		if cerr := s.limits.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
