package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
	// ErrCodeMismatch is returned when a supplied one-time code differs from the stored one.
	ErrCodeMismatch = errors.New("code mismatch")
)
