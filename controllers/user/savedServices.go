package userController

import (
	"log"

	"spotsure/database"
	"spotsure/middleware"
	"spotsure/models"

	"github.com/gofiber/fiber/v2"
)

// GetSavedServices returns the session user's bookmarked services
func GetSavedServices(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Preload("SavedServices").First(&user, userId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	savedServices := user.SavedServices
	if savedServices == nil {
		savedServices = []models.Service{}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Saved services fetched!", fiber.Map{
		"savedServices": savedServices,
	})
}

// ToggleSavedService flips a service in and out of the user's saved set.
// Absent becomes present ("saved"), present becomes absent ("removed").
func ToggleSavedService(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	serviceId, err := c.ParamsInt("serviceId")
	if err != nil || serviceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	db := database.Database.Db

	var service models.Service
	if err := db.First(&service, serviceId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	var user models.User
	if err := db.First(&user, userId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var count int64
	db.Table("user_saved_services").
		Where("user_id = ? AND service_id = ?", user.ID, service.ID).
		Count(&count)

	action := "saved"
	if count == 0 {
		err = db.Model(&user).Association("SavedServices").Append(&service)
	} else {
		action = "removed"
		err = db.Model(&user).Association("SavedServices").Delete(&service)
	}
	if err != nil {
		log.Printf("Error toggling saved service %d for user %d: %v", service.ID, user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update saved services!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Service "+action, fiber.Map{
		"action": action,
	})
}
