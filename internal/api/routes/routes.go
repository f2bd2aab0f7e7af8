package routes

import (
	"context"
	"time"

	"octofit-tracker/internal/api/handlers"
	"octofit-tracker/internal/auth"
	"octofit-tracker/internal/events"
	"octofit-tracker/internal/models"
	"octofit-tracker/internal/observability"
	"octofit-tracker/internal/repository"
	"octofit-tracker/internal/service"
	"octofit-tracker/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP surface needs
type Deps struct {
	Store          *repository.Store
	Leaderboard    *service.LeaderboardService
	Pool           handlers.RecomputeSubmitter
	Hub            *websocket.Hub // nil disables /ws
	Events         events.Publisher
	Auth           auth.Config
	AllowedOrigins string
	AccessLog      bool
}

// NewApp builds the fiber application with every route registered
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "OctoFit Tracker",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(observability.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v := handlers.NewValidator()
	requireAuth := auth.RequireAuth(deps.Auth)
	lb := handlers.NewLeaderboardHandler(deps.Leaderboard, deps.Pool)

	api := app.Group("/api")
	api.Get("/", handlers.Root)
	api.Get("/health", lb.HealthCheck)

	// registered before the generic :id routes so they are not shadowed
	api.Get("/leaderboard/top", lb.Top)
	api.Post("/leaderboard/recompute", requireAuth, lb.Recompute)

	handlers.NewResourceHandler(deps.Store.Users, v, nil).Register(api.Group("/users"), requireAuth)
	handlers.NewResourceHandler(deps.Store.Teams, v, nil).Register(api.Group("/teams"), requireAuth)
	handlers.NewResourceHandler(deps.Store.Activities, v, activityHook(deps.Events)).Register(api.Group("/activities"), requireAuth)
	handlers.NewResourceHandler(deps.Store.Leaderboard, v, nil).Register(api.Group("/leaderboard"), requireAuth)
	handlers.NewResourceHandler(deps.Store.Workouts, v, nil).Register(api.Group("/workouts"), requireAuth)

	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if fiberws.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", fiberws.New(func(c *fiberws.Conn) {
			websocket.ServeWS(deps.Hub, c)
		}))
	}

	return app
}

func activityHook(publisher events.Publisher) handlers.WriteHook[models.Activity] {
	if publisher == nil {
		return nil
	}
	return func(ctx context.Context, op string, activity models.Activity) {
		if op == "create" {
			publisher.ActivityRecorded(ctx, activity)
		}
	}
}
