package imageRoutes

import (
	imageController "spotsure/controllers/image"

	"github.com/gofiber/fiber/v2"
)

// SetupImageRoutes sets up the image streaming route
func SetupImageRoutes(app *fiber.App) {
	app.Get("/image/:id", imageController.GetImage)
}
