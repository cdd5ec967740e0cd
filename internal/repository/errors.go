package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEmail is returned when a user's email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)
