package routes

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/controllers"
	"travelcompanion/config"
)

// HealthCheck reports the status of one backing service
type HealthCheck func(ctx context.Context) error

// Handlers groups everything SetupRoutes mounts
type Handlers struct {
	Auth       *controllers.AuthController
	Profile    *controllers.ProfileController
	Search     *controllers.SearchController
	Completion *controllers.CompletionController
	// RequireAuth guards every /api route except signup and signin
	RequireAuth fiber.Handler
	// HealthChecks are keyed by service name
	HealthChecks map[string]HealthCheck
}

func SetupRoutes(app *fiber.App, h Handlers) {
	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		services := map[string]string{}
		names := make([]string, 0, len(h.HealthChecks))
		for name := range h.HealthChecks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := "ok"
		for _, name := range names {
			if err := h.HealthChecks[name](ctx); err != nil {
				services[name] = "error: " + err.Error()
				status = "degraded"
			} else {
				services[name] = "ok"
			}
		}

		return c.JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services":  services,
		})
	})

	// API version endpoint
	app.Get("/api/version", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version":   config.AppVersion,
			"name":      config.AppName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Completion proxy, public like the mobile app expects
	app.Post("/chat", h.Completion.Chat)
	app.Post("/generate-itinerary", h.Completion.GenerateItinerary)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/signin", h.Auth.Signin)
	auth.Post("/signout", h.RequireAuth, h.Auth.Signout)

	api.Post("/profile", h.RequireAuth, h.Profile.CreateProfile)
	api.Get("/profile", h.RequireAuth, h.Profile.GetProfile)

	api.Post("/search", h.RequireAuth, h.Search.Search)
	api.Get("/search/history", h.RequireAuth, h.Search.History)
}
