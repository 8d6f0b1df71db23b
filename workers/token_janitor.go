package workers

import (
	"log"
	"time"

	"dumbbell/models"

	"github.com/jinzhu/gorm"
)

const JANITOR_INTERVAL = 10 * time.Minute

// StartTokenJanitor periodically removes API tokens older than ttl.
// Nothing is started when ttl is zero, since tokens never expire then.
func StartTokenJanitor(db *gorm.DB, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(JANITOR_INTERVAL)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := PurgeExpiredTokens(db, ttl, time.Now()); err != nil {
				log.Printf("token janitor: %v", err)
			}
		}
	}()
}

// PurgeExpiredTokens deletes the tokens created before now-ttl and returns
// how many rows were removed.
func PurgeExpiredTokens(db *gorm.DB, ttl time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-ttl)
	res := db.Where("created_at < ?", cutoff).Delete(&models.AuthToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("token janitor: removed %d expired tokens", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
