package authRoutes

import (
	authController "spotsure/controllers/auth"
	"spotsure/middleware"
	authValidator "spotsure/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login, logout and session-info routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/logout", authController.Logout)
	authGroup.Get("/me", middleware.OptionalJWTMiddleware, authController.Me)
}
