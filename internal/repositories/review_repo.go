package repositories

import "skincache/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	// GetAll returns every review, newest first (descending id).
	GetAll() ([]models.Review, error)
	// ExistsByTitleAndName reports whether a review with the given title and
	// author name is already stored. This is the restore dedup key.
	ExistsByTitleAndName(title, name string) (bool, error)
}
