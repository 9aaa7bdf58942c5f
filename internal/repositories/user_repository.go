package repositories

import "skincache/internal/models"

// UserRepository defines the interface for waitlist data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
}
