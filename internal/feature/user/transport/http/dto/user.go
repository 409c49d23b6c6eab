// Package dto defines request and response bodies for the user endpoints.
package dto

import (
	"time"

	"auth_backend/internal/feature/user/domain"
	"auth_backend/internal/feature/user/domain/entity"
)

// CreateUserReq is the registration body.
type CreateUserReq struct {
	Email       string  `json:"email" binding:"required,email,max=255"`
	Password    string  `json:"password" binding:"required,min=5"`
	FirstName   string  `json:"first_name" binding:"max=150"`
	LastName    string  `json:"last_name" binding:"max=150"`
	PhoneNumber string  `json:"phone_number" binding:"max=32"`
	DocumentID  *string `json:"document_id" binding:"omitempty,max=64"`
}

// UpdateUserReq is a partial update. Absent fields are left unchanged.
// ID defaults to the authenticated user.
type UpdateUserReq struct {
	ID          *uint   `json:"id"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Password    *string `json:"password" binding:"omitempty,min=5"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" binding:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
	DocumentID  *string `json:"document_id" binding:"omitempty,max=64"`
	IsActive    *bool   `json:"is_active"`
}

// UserRes is the public representation of a user. The password hash is never included.
type UserRes struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	DocumentID  *string   `json:"document_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUserRes builds the representation of u.
// Inactive users are refused with domain.ErrInactiveUser rather than rendered.
func NewUserRes(u *entity.User) (*UserRes, error) {
	if !u.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return &UserRes{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		DocumentID:  u.DocumentID,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}, nil
}

// UpdateUserRes is returned after a successful update. User is omitted when the update deactivated the account.
type UpdateUserRes struct {
	Message string   `json:"message"`
	User    *UserRes `json:"user,omitempty"`
	Status  int      `json:"status"`
}

// MessageRes is the {message, status} envelope.
type MessageRes struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
