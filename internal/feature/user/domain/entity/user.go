// Package entity defines the domain entities for the user feature.
package entity

import (
	"strings"
	"time"
)

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the lowercase address used for authentication. Unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	FirstName   string `gorm:"size:150"`
	LastName    string `gorm:"size:150"`
	PhoneNumber string `gorm:"size:32"`

	// DocumentID is an optional identity document number.
	DocumentID *string `gorm:"size:64"`

	// IsActive gates every read and authentication path. Inactive users are never represented.
	IsActive bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name with a single space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
