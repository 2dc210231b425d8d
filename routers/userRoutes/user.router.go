package userRoutes

import (
	userController "spotsure/controllers/user"
	"spotsure/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up saved-services routes for the session user
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user", middleware.JWTMiddleware)

	userGroup.Get("/me/saved", userController.GetSavedServices)
	userGroup.Post("/me/saved/:serviceId", userController.ToggleSavedService)
}
