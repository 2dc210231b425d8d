package main

import (
	"log"

	"spotsure/config"
	"spotsure/database"
	"spotsure/models"
	"spotsure/utils"
)

// Standalone repair tool: rebuilds every service's derived rating stats from
// its review set. Idempotent, safe to run anytime.
//
// Usage: go run scripts/recomputeRatings.go
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	if err := utils.RecomputeAllServiceRatings(db); err != nil {
		log.Fatalf("Recompute failed: %v", err)
	}

	var services []models.Service
	if err := db.Find(&services).Error; err != nil {
		log.Fatalf("Failed to list services: %v", err)
	}

	for _, svc := range services {
		log.Printf("Service %d -> avg=%.2f, ratings=%d, reviews=%d",
			svc.ID, svc.AverageRating, svc.RatingCount, svc.ReviewCount)
	}

	log.Println("Done.")
}
