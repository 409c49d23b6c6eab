// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Storage-level lookup failures returned by the auth adapters.
// The usecase layer translates them into client-facing errors.
var (
	// ErrOTPNotFound indicates that no OTP row carries the given code.
	ErrOTPNotFound = errors.New("otp not found")

	// ErrTokenNotOutstanding indicates that a token id was never recorded in the outstanding ledger
	// (or its record has already expired).
	ErrTokenNotOutstanding = errors.New("token not outstanding")
)
