// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// DefaultOTPValidityMinutes is used when an OTP is created without an explicit validity.
const DefaultOTPValidityMinutes = 10

// OTP is a single-use, time-boxed numeric code tied to a user.
// Rows are never deleted; consumption only clears IsActive.
type OTP struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`

	// Code is the fixed-width numeric code. Lookup is global, not scoped per user.
	Code string `gorm:"size:6;index;not null"`

	IsActive bool `gorm:"not null"`

	// ValidityMinutes is per-OTP, so changing the configured default does not affect issued codes.
	ValidityMinutes int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (OTP) TableName() string {
	return "otps"
}

// ExpiresAt returns the instant at which the OTP stops being valid.
func (o *OTP) ExpiresAt() time.Time {
	return o.CreatedAt.Add(time.Duration(o.ValidityMinutes) * time.Minute)
}

// IsExpired reports whether now is at or past the expiry instant.
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt())
}
