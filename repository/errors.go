package repository

import "errors"

var (
	// ErrMissingProjectID is returned when a photo is saved without its
	// owning project identifier
	ErrMissingProjectID = errors.New("photo must have a projectId")

	// ErrNotFound is returned for lookups of records that must exist
	// (it is never returned by delete or filter operations)
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateClassName rejects a class whose name already exists,
	// compared case-insensitively
	ErrDuplicateClassName = errors.New("class name already exists")

	// ErrInvalidTheme rejects theme values other than "light" or "dark"
	ErrInvalidTheme = errors.New("theme must be \"light\" or \"dark\"")
)
