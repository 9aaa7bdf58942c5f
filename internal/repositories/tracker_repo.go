package repositories

import "skincache/internal/models"

// TrackerRepository defines the interface for streak data access.
type TrackerRepository interface {
	// Get returns the tracker row for the pair, or ErrNotFound.
	Get(email, challenge string) (*models.Tracker, error)
	// Checkin applies one check-in for the pair on the given calendar date
	// (formatted 2006-01-02). It returns the resulting row and whether the
	// pair had already checked in on that date (in which case nothing was
	// written). The read-decide-write sequence runs atomically so two
	// concurrent check-ins for the same pair cannot both advance the streak.
	Checkin(email, challenge, today string) (*models.Tracker, bool, error)
}
