package serviceValidator

import (
	"strings"

	"spotsure/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateService validates the listing creation form. Category is optional
// and defaults downstream; the rest must be non-empty after trimming.
func CreateService() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		if strings.TrimSpace(c.FormValue("name")) == "" {
			errors["name"] = "Service name is required!"
		}
		if strings.TrimSpace(c.FormValue("city")) == "" {
			errors["city"] = "City is required!"
		}
		if strings.TrimSpace(c.FormValue("pincode")) == "" {
			errors["pincode"] = "Pincode is required!"
		}
		if strings.TrimSpace(c.FormValue("address")) == "" {
			errors["address"] = "Address is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
