package utils_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"spotsure/database"
	"spotsure/models"
	"spotsure/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	// Single connection so concurrent test goroutines serialize at the
	// sqlite layer; the lock registry is what keeps the stats consistent
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestSummarizeReviews(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		avg, ratings, reviews := utils.SummarizeReviews(nil)
		assert.Zero(t, avg)
		assert.Zero(t, ratings)
		assert.Zero(t, reviews)
	})

	t.Run("mean over ratings", func(t *testing.T) {
		avg, ratings, reviews := utils.SummarizeReviews([]models.Review{
			{Rating: 5, Comment: "great"},
			{Rating: 3},
		})
		assert.Equal(t, 4.0, avg)
		assert.Equal(t, 2, ratings)
		assert.Equal(t, 1, reviews)
	})

	t.Run("comment count independent of rating count", func(t *testing.T) {
		avg, ratings, reviews := utils.SummarizeReviews([]models.Review{
			{Rating: 4, Comment: "  "},
			{Rating: 2, Comment: "ok"},
			{Rating: 5, Comment: "fine"},
		})
		assert.InDelta(t, 11.0/3.0, avg, 1e-9)
		assert.Equal(t, 3, ratings)
		assert.Equal(t, 2, reviews)
	})

	t.Run("out of range ratings are ignored", func(t *testing.T) {
		avg, ratings, reviews := utils.SummarizeReviews([]models.Review{
			{Rating: 0, Comment: "bogus low"},
			{Rating: 9, Comment: "bogus high"},
			{Rating: 4},
		})
		assert.Equal(t, 4.0, avg)
		assert.Equal(t, 1, ratings)
		assert.Equal(t, 2, reviews)
	})
}

func TestRecomputeServiceRatings(t *testing.T) {
	db := openTestDb(t)

	service := models.Service{Name: "Joe's Clinic", Category: "Service", City: "Springfield", Pincode: "11111", Address: "1 Main St", DeleteCode: "AB12CD"}
	require.NoError(t, db.Create(&service).Error)

	require.NoError(t, db.Create(&models.Review{ServiceID: service.ID, Rating: 5, Comment: "great"}).Error)
	require.NoError(t, db.Create(&models.Review{ServiceID: service.ID, Rating: 3}).Error)

	require.NoError(t, utils.RecomputeServiceRatings(db, service.ID))

	var got models.Service
	require.NoError(t, db.First(&got, service.ID).Error)
	assert.Equal(t, 4.0, got.AverageRating)
	assert.Equal(t, 2, got.RatingCount)
	assert.Equal(t, 1, got.ReviewCount)

	// Removing every review must reset the stats, not leave them unchanged
	require.NoError(t, db.Unscoped().Where("service_id = ?", service.ID).Delete(&models.Review{}).Error)
	require.NoError(t, utils.RecomputeServiceRatings(db, service.ID))

	require.NoError(t, db.First(&got, service.ID).Error)
	assert.Zero(t, got.AverageRating)
	assert.Zero(t, got.RatingCount)
	assert.Zero(t, got.ReviewCount)
}

func TestRecomputeServiceRatingsUnknownService(t *testing.T) {
	db := openTestDb(t)

	err := utils.RecomputeServiceRatings(db, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecomputeAllServiceRatings(t *testing.T) {
	db := openTestDb(t)

	first := models.Service{Name: "A", Category: "Service", City: "X", Pincode: "1", Address: "a", DeleteCode: "AAAAAA"}
	second := models.Service{Name: "B", Category: "Service", City: "Y", Pincode: "2", Address: "b", DeleteCode: "BBBBBB"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, db.Create(&models.Review{ServiceID: first.ID, Rating: 2, Comment: "meh"}).Error)

	// Stale stats that the repair pass must overwrite
	require.NoError(t, db.Model(&models.Service{}).Where("id = ?", second.ID).Updates(map[string]interface{}{
		"average_rating": 3.5, "rating_count": 7, "review_count": 7,
	}).Error)

	require.NoError(t, utils.RecomputeAllServiceRatings(db))

	var got models.Service
	require.NoError(t, db.First(&got, first.ID).Error)
	assert.Equal(t, 2.0, got.AverageRating)
	assert.Equal(t, 1, got.RatingCount)
	assert.Equal(t, 1, got.ReviewCount)

	var gotSecond models.Service
	require.NoError(t, db.First(&gotSecond, second.ID).Error)
	assert.Zero(t, gotSecond.AverageRating)
	assert.Zero(t, gotSecond.RatingCount)
	assert.Zero(t, gotSecond.ReviewCount)
}

func TestConcurrentSubmissionsNoLostUpdates(t *testing.T) {
	db := openTestDb(t)

	service := models.Service{Name: "Busy", Category: "Service", City: "Springfield", Pincode: "11111", Address: "1 Main St", DeleteCode: "AAAAAA"}
	require.NoError(t, db.Create(&service).Error)

	const submissions = 8
	ratingSum := 0
	for i := 0; i < submissions; i++ {
		ratingSum += i%5 + 1
	}

	// Each goroutine runs the submission protocol: create the review and
	// recompute while holding the service lock. The final stats must reflect
	// every submission, not just the last writer's view.
	errs := make(chan error, submissions)
	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()

			lock := utils.LockService(service.ID)
			lock.Lock()
			defer lock.Unlock()

			if err := db.Create(&models.Review{ServiceID: service.ID, Rating: rating}).Error; err != nil {
				errs <- err
				return
			}
			errs <- utils.RecomputeServiceRatings(db, service.ID)
		}(i%5 + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var got models.Service
	require.NoError(t, db.First(&got, service.ID).Error)
	assert.Equal(t, submissions, got.RatingCount)
	assert.InDelta(t, float64(ratingSum)/float64(submissions), got.AverageRating, 1e-9)
}

func TestConcurrentDeleteLeavesNoOrphanedReviews(t *testing.T) {
	db := openTestDb(t)

	service := models.Service{Name: "Doomed", Category: "Service", City: "Springfield", Pincode: "11111", Address: "1 Main St", DeleteCode: "AAAAAA"}
	require.NoError(t, db.Create(&service).Error)

	errs := make(chan error, 2)
	var wg sync.WaitGroup

	// Submitter: keeps creating reviews until the service disappears,
	// re-checking existence under the service lock each time
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			lock := utils.LockService(service.ID)
			lock.Lock()

			var svc models.Service
			if err := db.First(&svc, service.ID).Error; err != nil {
				lock.Unlock()
				errs <- nil
				return
			}
			if err := db.Create(&models.Review{ServiceID: service.ID, Rating: 4}).Error; err != nil {
				lock.Unlock()
				errs <- err
				return
			}
			err := utils.RecomputeServiceRatings(db, service.ID)
			lock.Unlock()
			if err != nil {
				errs <- err
				return
			}
		}
		errs <- nil
	}()

	// Deleter: cascade under the same lock, as the delete endpoint does
	wg.Add(1)
	go func() {
		defer wg.Done()

		lock := utils.LockService(service.ID)
		lock.Lock()
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("service_id = ?", service.ID).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			return tx.Unscoped().Delete(&models.Service{}, service.ID).Error
		})
		lock.Unlock()
		utils.ForgetServiceLock(service.ID)
		errs <- err
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var orphans int64
	db.Unscoped().Model(&models.Review{}).Where("service_id = ?", service.ID).Count(&orphans)
	assert.Zero(t, orphans, "no review may outlive its service")

	var services int64
	db.Unscoped().Model(&models.Service{}).Where("id = ?", service.ID).Count(&services)
	assert.Zero(t, services)
}

func TestGenerateDeleteCode(t *testing.T) {
	code, err := utils.GenerateDeleteCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(ch))
	}

	other, err := utils.GenerateDeleteCode(6)
	require.NoError(t, err)
	assert.NotEqual(t, code, other, "two generated codes collided")
}
