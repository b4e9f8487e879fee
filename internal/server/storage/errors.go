package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrProjectNotFound indicates that project was not found or is soft-deleted
	ErrProjectNotFound = errors.New("project not found")

	// ErrAlreadySaved indicates that the project is already in the user's saved list
	ErrAlreadySaved = errors.New("project already saved")

	// ErrNotSaved indicates that the project is not in the user's saved list
	ErrNotSaved = errors.New("project not saved")
)
