// Package domain defines domain-level errors for the user feature.
package domain

import "auth_backend/internal/shared/apperr"

// These errors are shared by the user and auth features and returned by the user adapters.
var (
	// ErrUserNotFound indicates that no user matched the lookup.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user_not_found", "User not found")

	// ErrEmailAlreadyExists is returned when an email is already registered to another user.
	ErrEmailAlreadyExists = apperr.New(apperr.KindConflict, "duplicate_email", "Error creating user, email already exists")

	// ErrInactiveUser is returned when a deactivated user would be represented.
	ErrInactiveUser = apperr.New(apperr.KindInactive, "inactive_user", "This user is not active")
)
