package repositories

import (
	"sync"

	"skincache/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	byEmail map[string]models.User
	nextID  uint
	mu      sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		byEmail: make(map[string]models.User),
		nextID:  1,
	}
}

// Create adds a waitlist entry, enforcing the unique email constraint.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrEmailTaken
	}
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = *user
	return nil
}

// GetByEmail returns the waitlist entry for an email, or ErrNotFound.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
