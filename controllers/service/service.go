package serviceController

import (
	"log"
	"strings"

	"spotsure/config"
	"spotsure/database"
	"spotsure/middleware"
	"spotsure/models"
	"spotsure/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateService creates a listing and returns it together with the plaintext
// delete code. The code is persisted for later checks but this response is
// the only place a caller is ever shown it.
func CreateService(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	category := strings.TrimSpace(c.FormValue("category"))
	city := strings.TrimSpace(c.FormValue("city"))
	pincode := strings.TrimSpace(c.FormValue("pincode"))
	address := strings.TrimSpace(c.FormValue("address"))

	if category == "" {
		category = config.AppConfig.DefaultCategory
	}

	// Optional listing image; a storage failure must not fail the creation
	imageID := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imageID, err = utils.SaveUploadedImage(file)
		if err != nil {
			log.Printf("Image upload failed, creating service without image: %v", err)
			imageID = ""
		}
	}

	deleteCode, err := utils.GenerateDeleteCode(config.AppConfig.DeleteCodeLength)
	if err != nil {
		log.Printf("Error generating delete code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create service!", nil)
	}

	service := models.Service{
		Name:       name,
		Category:   category,
		City:       city,
		Pincode:    pincode,
		Address:    address,
		ImageID:    imageID,
		IsApproved: true,
		DeleteCode: deleteCode,
	}

	if err := database.Database.Db.Create(&service).Error; err != nil {
		log.Printf("Error saving service to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create service!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Service created. Keep the delete code safe, it is not shown again.", fiber.Map{
		"service":    service,
		"deleteCode": deleteCode,
	})
}

// ListServices returns approved services, newest first, optionally filtered
// by city (case-insensitive substring), pincode (exact) and category
// (case-insensitive exact, "all" meaning no filter).
func ListServices(c *fiber.Ctx) error {
	city := strings.TrimSpace(c.Query("city"))
	pincode := strings.TrimSpace(c.Query("pincode"))
	category := strings.TrimSpace(c.Query("category"))

	query := database.Database.Db.Model(&models.Service{}).Where("is_approved = ?", true)

	if city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if pincode != "" {
		query = query.Where("pincode = ?", pincode)
	}
	if category != "" && !strings.EqualFold(category, "all") {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var services []models.Service
	if err := query.Order("created_at DESC").Find(&services).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch services!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Services fetched!", fiber.Map{
		"services": services,
	})
}

// GetService returns one service with its derived stats
func GetService(c *fiber.Ctx) error {
	serviceId, err := c.ParamsInt("id")
	if err != nil || serviceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	var service models.Service
	if err := database.Database.Db.First(&service, serviceId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Service fetched!", fiber.Map{
		"service": service,
	})
}

// DeleteService deletes a listing when the supplied delete code matches.
// The service row, its reviews and any saved-service references go in one
// transaction so a failed cascade leaves nothing half-applied.
func DeleteService(c *fiber.Ctx) error {
	serviceId, err := c.ParamsInt("id")
	if err != nil || serviceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	reqData := new(struct {
		DeleteCode string `json:"deleteCode"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	suppliedCode := strings.TrimSpace(reqData.DeleteCode)
	if suppliedCode == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Delete code is required!", nil)
	}

	db := database.Database.Db

	// Serialize against review submissions for the same service
	lock := utils.LockService(uint(serviceId))
	lock.Lock()
	defer lock.Unlock()

	var service models.Service
	if err := db.First(&service, serviceId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	// Codes are generated, not typed from memory: exact match
	if suppliedCode != service.DeleteCode {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Incorrect delete code!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("service_id = ?", service.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		// Prune the listing from every user's saved set
		if err := tx.Exec("DELETE FROM user_saved_services WHERE service_id = ?", service.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&service).Error
	})
	if err != nil {
		log.Printf("Error deleting service %d: %v", service.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete service!", nil)
	}

	utils.ForgetServiceLock(service.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Service deleted successfully!", nil)
}
