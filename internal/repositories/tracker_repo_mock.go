package repositories

import (
	"sync"

	"skincache/internal/models"
)

// MockTrackerRepository is an in-memory implementation of TrackerRepository.
type MockTrackerRepository struct {
	trackers map[string]*models.Tracker
	nextID   uint
	mu       sync.Mutex
}

// NewMockTrackerRepository creates a new instance of MockTrackerRepository.
func NewMockTrackerRepository() *MockTrackerRepository {
	return &MockTrackerRepository{
		trackers: make(map[string]*models.Tracker),
		nextID:   1,
	}
}

func pairKey(email, challenge string) string {
	return email + "\x00" + challenge
}

// Get returns the tracker row for the pair, or ErrNotFound.
func (r *MockTrackerRepository) Get(email, challenge string) (*models.Tracker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trackers[pairKey(email, challenge)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// Checkin applies one check-in under the repository lock.
func (r *MockTrackerRepository) Checkin(email, challenge, today string) (*models.Tracker, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(email, challenge)
	t, ok := r.trackers[key]
	if !ok {
		t = &models.Tracker{
			ID:              r.nextID,
			Email:           email,
			ChallengeName:   challenge,
			CurrentDay:      1,
			LastCheckinDate: today,
		}
		r.nextID++
		r.trackers[key] = t
		cp := *t
		return &cp, false, nil
	}

	if t.LastCheckinDate == today {
		cp := *t
		return &cp, true, nil
	}

	t.CurrentDay++
	t.LastCheckinDate = today
	cp := *t
	return &cp, false, nil
}
