package handlers

import (
	"errors"
	"time"

	"ecommerce/internal/middleware"
	"ecommerce/internal/models"
	"ecommerce/internal/services"
	"ecommerce/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services are the dependencies of the HTTP layer.
type Services struct {
	Auth       *services.AuthService
	Categories *services.CategoryService
	Products   *services.ProductService
	// EventsEnabled is reported by the health check.
	EventsEnabled bool
}

// NewApp builds the Fiber app with every route under /api/v1.
func NewApp(svc Services, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ecommerce-api",
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log.Component("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"events": svc.EventsEnabled,
		})
	})

	authRequired := middleware.AuthRequired(svc.Auth, log.Component("auth"))
	guards := Guards{
		User:  []fiber.Handler{authRequired},
		Admin: []fiber.Handler{authRequired, middleware.RequireRole(models.RoleAdmin)},
	}

	apiV1 := app.Group("/api/v1")
	NewAuthHandler(svc.Auth, log).RegisterRoutes(apiV1, guards)
	NewCategoryHandler(svc.Categories, log).RegisterRoutes(apiV1, guards)
	NewProductHandler(svc.Products, log).RegisterRoutes(apiV1, guards)

	return app
}

// errorHandler answers errors that escaped the handlers, such as unknown
// routes, with the same JSON shape.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"message": fe.Message,
			})
		}
		return writeError(c, log, err)
	}
}
