package app

import (
	"wanderlust-backend/internal/auth"
	"wanderlust-backend/internal/config"
	"wanderlust-backend/internal/listings"
	"wanderlust-backend/internal/middleware"
	"wanderlust-backend/internal/reviews"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Dependencies are injected so tests can pass an in-memory
// store and a fake Redis.
func CreateApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		IsProduction: cfg.Env == "production",
	}
	app.Use(middleware.Session(rdb, sessionCfg))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Home
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/listings", fiber.StatusFound)
	})

	// Auth
	authHandlers := &auth.Handlers{DB: db, Rdb: rdb}
	app.Get("/signup", authHandlers.SignupForm)
	app.Post("/signup", authHandlers.Signup)
	app.Get("/login", authHandlers.LoginForm)
	app.Post("/login", authHandlers.Login)
	app.Get("/logout", middleware.RequireAuth(), authHandlers.Logout)

	// Listings: reads are public, mutations (and the forms that feed them)
	// sit behind the auth gate.
	listingHandlers := &listings.Handlers{Service: &listings.Service{DB: db}}
	app.Get("/listings", listingHandlers.Index)
	app.Get("/listings/new", middleware.RequireAuth(), listingHandlers.NewForm)
	app.Post("/listings", middleware.RequireAuth(), listingHandlers.Create)
	app.Get("/listings/:id", listingHandlers.Show)
	app.Get("/listings/:id/edit", middleware.RequireAuth(), listingHandlers.EditForm)
	app.Put("/listings/:id", middleware.RequireAuth(), listingHandlers.Update)
	app.Delete("/listings/:id", middleware.RequireAuth(), listingHandlers.Delete)

	// Reviews sub-resource
	reviewHandlers := &reviews.Handlers{Service: &reviews.Service{DB: db}}
	app.Post("/listings/:id/reviews", middleware.RequireAuth(), reviewHandlers.Add)
	app.Delete("/listings/:id/reviews/:reviewId", middleware.RequireAuth(), reviewHandlers.Delete)

	return app
}
