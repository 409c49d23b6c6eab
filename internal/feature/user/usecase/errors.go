package usecase

import "auth_backend/internal/shared/apperr"

var (
	// ErrMissingID is returned when no user id was supplied or resolvable.
	ErrMissingID = apperr.New(apperr.KindValidation, "missing_user_id", "User id not found")

	// ErrNotOwner is returned when a caller tries to update another user's account.
	ErrNotOwner = apperr.New(apperr.KindForbidden, "not_owner", "You can only update your own account")

	// ErrEmailRequired is returned when an email is empty after normalization.
	ErrEmailRequired = apperr.New(apperr.KindValidation, "email_required", "Email is required").
				WithFields(map[string][]string{"email": {"This field is required."}})

	// ErrInvalidPassword is returned when a password is shorter than minPasswordLength.
	ErrInvalidPassword = apperr.New(apperr.KindValidation, "invalid_password", "Password is too short").
				WithFields(map[string][]string{"password": {"Ensure this field has at least 5 characters."}})
)
