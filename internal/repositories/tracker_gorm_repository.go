package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skincache/internal/models"
)

// GORMTrackerRepository is a GORM implementation of TrackerRepository.
type GORMTrackerRepository struct {
	db *gorm.DB
}

// NewGORMTrackerRepository creates a new instance of GORMTrackerRepository.
func NewGORMTrackerRepository(db *gorm.DB) *GORMTrackerRepository {
	return &GORMTrackerRepository{
		db: db,
	}
}

// Get retrieves the tracker row for an (email, challenge) pair.
func (r *GORMTrackerRepository) Get(email, challenge string) (*models.Tracker, error) {
	var tracker models.Tracker
	err := r.db.First(&tracker, "email = ? AND challenge_name = ?", email, challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tracker for %s/%s: %w", email, challenge, err)
	}
	return &tracker, nil
}

// Checkin runs the whole check-in transition in one transaction, taking a
// row-level lock on the pair. On postgres the lock is FOR UPDATE; sqlite's
// single writer gives the same guarantee without it.
func (r *GORMTrackerRepository) Checkin(email, challenge, today string) (*models.Tracker, bool, error) {
	var (
		tracker models.Tracker
		already bool
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		err := q.First(&tracker, "email = ? AND challenge_name = ?", email, challenge).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			tracker = models.Tracker{
				Email:           email,
				ChallengeName:   challenge,
				CurrentDay:      1,
				LastCheckinDate: today,
			}
			return tx.Create(&tracker).Error
		}
		if err != nil {
			return err
		}

		if tracker.LastCheckinDate == today {
			already = true
			return nil
		}

		// A gap of any length still advances the streak; it never resets.
		tracker.CurrentDay++
		tracker.LastCheckinDate = today
		return tx.Model(&tracker).Updates(map[string]interface{}{
			"current_day":       tracker.CurrentDay,
			"last_checkin_date": tracker.LastCheckinDate,
		}).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to check in %s/%s: %w", email, challenge, err)
	}
	return &tracker, already, nil
}
