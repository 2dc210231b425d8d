package utils

import (
	"log"
	"time"

	"spotsure/config"
	"spotsure/database"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[RATINGS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeRatingsScheduler starts the periodic repair recompute when
// RATINGS_REPAIR_CRON is set. Normal operation recomputes synchronously on
// every review write; this pass only mends stats after manual data edits or
// a crash between a review write and its recompute.
func InitializeRatingsScheduler() *cron.Cron {
	spec := config.AppConfig.RatingsRepairCron
	if spec == "" {
		return nil
	}

	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		logScheduler("Starting repair recompute")
		if err := RecomputeAllServiceRatings(database.Database.Db); err != nil {
			logScheduler("Repair recompute failed: " + err.Error())
			return
		}
		logScheduler("Repair recompute finished")
	})
	if err != nil {
		log.Fatalf("Invalid RATINGS_REPAIR_CRON %q: %v", spec, err)
	}

	c.Start()
	logScheduler("Scheduler started with spec " + spec)
	return c
}
