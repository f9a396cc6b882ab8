package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrRecurringSeries is returned when a single occurrence of a recurring
	// event is asked to move on its own.
	ErrRecurringSeries = errors.New("recurring events must be moved as a series")
)
