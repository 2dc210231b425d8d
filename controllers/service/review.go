package serviceController

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"spotsure/database"
	"spotsure/middleware"
	"spotsure/models"
	"spotsure/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

const maxReviewImages = 5

// SubmitReview creates a review for a service and synchronously recomputes
// the service's derived stats before responding. Image-store failures degrade
// to a review without images rather than failing the submission.
func SubmitReview(c *fiber.Ctx) error {
	serviceId, err := c.ParamsInt("id")
	if err != nil || serviceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	db := database.Database.Db

	// Holding the service lock across {existence check, create, recompute}
	// guarantees the stored stats always reflect the full review set and that
	// no review lands on a concurrently deleted service.
	lock := utils.LockService(uint(serviceId))
	lock.Lock()
	defer lock.Unlock()

	var service models.Service
	if err := db.First(&service, serviceId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	rating, err := strconv.Atoi(strings.TrimSpace(c.FormValue("rating")))
	if err != nil || rating < 1 || rating > 5 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
	}

	username := strings.TrimSpace(c.FormValue("username"))
	if username == "" {
		username = "Anonymous"
	}
	comment := strings.TrimSpace(c.FormValue("comment"))

	imageIDs := []string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > maxReviewImages {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You can upload at most 5 images!", nil)
		}
		for _, file := range files {
			imageID, err := utils.SaveUploadedImage(file)
			if err != nil {
				log.Printf("Review image upload failed, continuing without it: %v", err)
				continue
			}
			imageIDs = append(imageIDs, imageID)
		}
	}

	imageJSON, err := json.Marshal(imageIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	review := models.Review{
		ServiceID: service.ID,
		Username:  username,
		Rating:    rating,
		Comment:   comment,
		ImageIDs:  datatypes.JSON(imageJSON),
	}

	if err := db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	if err := utils.RecomputeServiceRatings(db, service.ID); err != nil {
		log.Printf("Error recomputing ratings for service %d: %v", service.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review created!", fiber.Map{
		"review": review,
	})
}

// GetReviews returns a service's reviews, newest first. A missing service
// yields an empty list, matching the public pages' expectations.
func GetReviews(c *fiber.Ctx) error {
	serviceId, err := c.ParamsInt("id")
	if err != nil || serviceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Service not found!", nil)
	}

	var reviews []models.Review
	if err := database.Database.Db.Where("service_id = ?", serviceId).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": reviews,
	})
}
