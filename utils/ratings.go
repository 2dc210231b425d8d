package utils

import (
	"log"
	"strings"
	"sync"

	"spotsure/models"

	"gorm.io/gorm"
)

// Per-service lock registry. A service's lock serializes review creation,
// stat recomputation and deletion for that service, so concurrent submissions
// cannot clobber each other's stats and a delete cannot interleave with a
// submission. Entries are removed when the service is deleted.
var (
	serviceLocksMu sync.Mutex
	serviceLocks   = map[uint]*sync.Mutex{}
)

// LockService returns the mutex guarding mutations for one service
func LockService(serviceID uint) *sync.Mutex {
	serviceLocksMu.Lock()
	defer serviceLocksMu.Unlock()

	lock, ok := serviceLocks[serviceID]
	if !ok {
		lock = &sync.Mutex{}
		serviceLocks[serviceID] = lock
	}
	return lock
}

// ForgetServiceLock drops the registry entry after a service is deleted
func ForgetServiceLock(serviceID uint) {
	serviceLocksMu.Lock()
	defer serviceLocksMu.Unlock()
	delete(serviceLocks, serviceID)
}

// SummarizeReviews folds a review set into the derived stats.
// Only ratings in [1,5] count toward ratingCount and the mean; submission
// validates this already, but the fold re-checks so a malformed row can never
// poison the average. reviewCount counts non-empty trimmed comments and is
// independent of ratingCount.
func SummarizeReviews(reviews []models.Review) (averageRating float64, ratingCount, reviewCount int) {
	ratingSum := 0
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			ratingSum += r.Rating
			ratingCount++
		}
		if strings.TrimSpace(r.Comment) != "" {
			reviewCount++
		}
	}

	if ratingCount > 0 {
		averageRating = float64(ratingSum) / float64(ratingCount)
	}
	return averageRating, ratingCount, reviewCount
}

// RecomputeServiceRatings overwrites a service's derived stats from its
// current review set. An empty set resets all three stats to zero rather than
// leaving them unchanged. Callers mutating reviews must hold the service lock.
func RecomputeServiceRatings(db *gorm.DB, serviceID uint) error {
	if err := db.First(&models.Service{}, serviceID).Error; err != nil {
		return err
	}

	var reviews []models.Review
	if err := db.Where("service_id = ?", serviceID).Find(&reviews).Error; err != nil {
		return err
	}

	averageRating, ratingCount, reviewCount := SummarizeReviews(reviews)

	return db.Model(&models.Service{}).Where("id = ?", serviceID).Updates(map[string]interface{}{
		"average_rating": averageRating,
		"rating_count":   ratingCount,
		"review_count":   reviewCount,
	}).Error
}

// RecomputeAllServiceRatings rebuilds derived stats for every service.
// Idempotent repair tool, safe to run anytime.
func RecomputeAllServiceRatings(db *gorm.DB) error {
	var services []models.Service
	if err := db.Find(&services).Error; err != nil {
		return err
	}

	log.Printf("Recomputing ratings for %d services", len(services))

	for _, svc := range services {
		lock := LockService(svc.ID)
		lock.Lock()
		err := RecomputeServiceRatings(db, svc.ID)
		lock.Unlock()
		if err != nil {
			log.Printf("Service %d -> recompute failed: %v", svc.ID, err)
			continue
		}
	}
	return nil
}
