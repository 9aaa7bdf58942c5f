package repositories

import "errors"

var (
	// ErrEmailTaken is returned when a waitlist insert hits the unique email
	// constraint.
	ErrEmailTaken = errors.New("email already exists")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
)
