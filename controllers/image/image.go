package imageController

import (
	"fmt"
	"os"
	"time"

	"spotsure/config"
	"spotsure/middleware"
	"spotsure/utils"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// GetImage streams a stored image blob by its opaque id. When a remote image
// provider is configured the blob is proxied through this server so the
// provider's URLs never reach clients; otherwise it comes off local disk.
func GetImage(c *fiber.Ctx) error {
	imageID := c.Params("id")
	if imageID == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Image not found!", nil)
	}

	if config.AppConfig.ImageCloudName != "" {
		return proxyRemoteImage(c, imageID)
	}

	filePath := utils.ImagePath(imageID)
	if _, err := os.Stat(filePath); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Image not found!", nil)
	}

	return c.SendFile(filePath)
}

func proxyRemoteImage(c *fiber.Ctx, imageID string) error {
	url := fmt.Sprintf(
		"https://res.cloudinary.com/%s/image/upload/%s.jpg",
		config.AppConfig.ImageCloudName,
		imageID,
	)

	client := resty.New()
	client.SetTimeout(10 * time.Second)

	resp, err := client.R().Get(url)
	if err != nil || resp.StatusCode() != fiber.StatusOK {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Image not found!", nil)
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Set("Content-Type", contentType)

	return c.Send(resp.Body())
}
