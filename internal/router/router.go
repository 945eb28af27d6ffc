package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/alumnet-go-api/internal/config"
	"github.com/noah-isme/alumnet-go-api/internal/handler"
	"github.com/noah-isme/alumnet-go-api/internal/middleware"
	"github.com/noah-isme/alumnet-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler           *handler.AuthHandler
	AlumniHandler         *handler.DirectoryHandler
	StudentHandler        *handler.DirectoryHandler
	ProfileHandler        *handler.ProfileHandler
	ConnectionHandler     *handler.ConnectionHandler
	CommunityHandler      *handler.CommunityHandler
	AdminUserHandler      *handler.AdminUserHandler
	AdminActivityHandler  *handler.AdminActivityHandler
	AdminBroadcastHandler *handler.AdminBroadcastHandler
	EnrollmentHandler     *handler.EnrollmentHandler
	JWTMiddleware         fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		// Credential endpoints get a brute-force cap on top of bcrypt cost.
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.AlumniHandler != nil {
		alumni := api.Group("/alumni", jwtMiddleware)
		deps.AlumniHandler.Register(alumni)
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
		if deps.ProfileHandler != nil {
			deps.ProfileHandler.Register(students)
		}
	}

	if deps.ConnectionHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware)
		deps.ConnectionHandler.Register(notifications)
	}

	if deps.CommunityHandler != nil {
		communities := api.Group("/communities", jwtMiddleware)
		deps.CommunityHandler.Register(communities)

		posts := api.Group("/posts", jwtMiddleware)
		deps.CommunityHandler.RegisterPosts(posts)
	}

	// Admin surface: JWT plus role gate.
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin"))
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin)
	}
	if deps.AdminActivityHandler != nil {
		deps.AdminActivityHandler.Register(admin)
	}
	if deps.AdminBroadcastHandler != nil {
		deps.AdminBroadcastHandler.Register(admin)
	}

	if deps.EnrollmentHandler != nil {
		enrollments := api.Group("/enrollments", jwtMiddleware, middleware.RequireRole("admin"))
		deps.EnrollmentHandler.Register(enrollments)
	}
}
