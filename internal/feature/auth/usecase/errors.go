// Package usecase implements the business logic for the auth feature.
package usecase

import "auth_backend/internal/shared/apperr"

// Client-facing auth failures. Every one of them renders as {message, status}.
var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = apperr.New(apperr.KindValidation, "missing_credentials", "Error Email or Password not found")

	// ErrUnknownEmail is returned when no (active) user has the email.
	ErrUnknownEmail = apperr.New(apperr.KindAuthentication, "unknown_email", "Error Email not found")

	// ErrInvalidCredentials is returned on a password mismatch or an inactive account.
	ErrInvalidCredentials = apperr.New(apperr.KindAuthentication, "invalid_credentials", "Error login, password incorrect")

	// ErrMissingToken is returned when no refresh token was supplied.
	ErrMissingToken = apperr.New(apperr.KindValidation, "missing_token", "Error refresh token not found")

	// ErrInvalidToken covers malformed, expired, unknown and blacklisted refresh tokens.
	ErrInvalidToken = apperr.New(apperr.KindToken, "invalid_token", "Invalid token.")

	// ErrNoActiveTokens is returned by LogoutAll when the user has nothing to revoke.
	ErrNoActiveTokens = apperr.New(apperr.KindToken, "no_active_tokens", "No active tokens for this user.")

	// ErrLogoutFailed hides ledger failures from the client. The cause is logged, never rendered.
	ErrLogoutFailed = apperr.New(apperr.KindToken, "logout_failed", "Error logout")

	// ErrInvalidOTP is returned for unknown, consumed or concurrently consumed codes.
	ErrInvalidOTP = apperr.New(apperr.KindValidation, "invalid_otp", "Invalid OTP code.")

	// ErrExpiredOTP is returned when the code's validity window has elapsed.
	ErrExpiredOTP = apperr.New(apperr.KindValidation, "expired_otp", "OTP code has expired.")

	// ErrMissingPhone is returned when an SMS code is requested for a user without a phone number.
	ErrMissingPhone = apperr.New(apperr.KindValidation, "missing_phone", "User has no phone number")

	// ErrUnsupportedChannel is returned for delivery channels other than email and sms.
	ErrUnsupportedChannel = apperr.New(apperr.KindValidation, "unsupported_channel", "Unsupported OTP channel")
)
