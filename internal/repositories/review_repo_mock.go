package repositories

import (
	"sync"

	"skincache/internal/models"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews []models.Review
	nextID  uint
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{nextID: 1}
}

// Create adds a new review, assigning a monotonic id.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = r.nextID
	r.nextID++
	if review.Rating == 0 {
		review.Rating = 5
	}
	if review.Time == "" {
		review.Time = "Just now"
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

// GetAll returns all reviews, newest first.
func (r *MockReviewRepository) GetAll() ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Review, 0, len(r.reviews))
	for i := len(r.reviews) - 1; i >= 0; i-- {
		out = append(out, r.reviews[i])
	}
	return out, nil
}

// ExistsByTitleAndName reports whether a review matching (title, name) exists.
func (r *MockReviewRepository) ExistsByTitleAndName(title, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.Title == title && rev.Name == name {
			return true, nil
		}
	}
	return false, nil
}
