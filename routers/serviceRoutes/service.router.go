package serviceRoutes

import (
	serviceController "spotsure/controllers/service"
	serviceValidator "spotsure/validators/service"

	"github.com/gofiber/fiber/v2"
)

// SetupServiceRoutes sets up the public directory and review routes
func SetupServiceRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	apiGroup.Post("/services", serviceValidator.CreateService(), serviceController.CreateService)
	apiGroup.Get("/services", serviceController.ListServices)
	apiGroup.Get("/services/:id", serviceController.GetService)
	apiGroup.Delete("/services/:id", serviceController.DeleteService)

	apiGroup.Post("/services/:id/reviews", serviceController.SubmitReview)
	apiGroup.Get("/services/:id/reviews", serviceController.GetReviews)
}
