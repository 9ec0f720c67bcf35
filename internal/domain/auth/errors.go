package auth

import "errors"

var (
	// ErrEmailExists indicates a duplicate email address.
	ErrEmailExists = errors.New("email already exists")
	// ErrUserNotFound is returned by repositories for unknown ids.
	ErrUserNotFound = errors.New("user not found")
)
