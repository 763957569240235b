package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/handlers"
	"github.com/niley1nov/LMS/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	courseHandler *handlers.CourseHandler,
	moduleHandler *handlers.ModuleHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — sign-in is public with a stricter rate limit; logout only needs
	// the cookie cleared, so it stays public too.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Post("/logout", authHandler.Logout)

	session := middleware.RequireUser(cfg, db)

	users := api.Group("/users", session)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	courses := api.Group("/courses", session)
	courses.Get("/", courseHandler.List)
	courses.Post("/", courseHandler.Create)
	courses.Get("/:id", courseHandler.GetByID)
	courses.Post("/enroll", courseHandler.Enroll)
	courses.Get("/:course_id/modules", moduleHandler.ListByCourse)
	courses.Post("/:course_id/modules", moduleHandler.Create)

	modules := api.Group("/modules", session)
	modules.Get("/:module_id/units", moduleHandler.ListUnits)
	modules.Post("/:module_id/units", moduleHandler.CreateUnit)
}
