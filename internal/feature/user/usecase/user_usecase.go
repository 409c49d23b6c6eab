// Package usecase implements the business logic for the user feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"auth_backend/internal/feature/user/domain"
	"auth_backend/internal/feature/user/domain/entity"
)

// minPasswordLength is the shortest accepted password.
const minPasswordLength = 5

// UserRepository abstracts the persistence layer for user entities.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. A taken email yields domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// Update persists all fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns domain.ErrUserNotFound when the id does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// ListActive returns every active user.
	ListActive(ctx context.Context) ([]*entity.User, error)
}

// CreateInput carries the fields accepted on registration.
type CreateInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DocumentID  *string
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	ID          uint
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	DocumentID  *string
	IsActive    *bool
}

type userUsecase struct {
	users      UserRepository
	bcryptCost int
}

// NewUserUsecase creates the user usecase.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users, bcryptCost: bcrypt.DefaultCost}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

func (u *userUsecase) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Create registers a new active user with a hashed password.
// Storage is not touched when the email is already registered.
func (u *userUsecase) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := u.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:       email,
		Password:    hashed,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		DocumentID:  in.DocumentID,
		IsActive:    true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update merges the supplied fields into the user identified by in.ID.
func (u *userUsecase) Update(ctx context.Context, in UpdateInput) (*entity.User, error) {
	if in.ID == 0 {
		return nil, ErrMissingID
	}
	user, err := u.users.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound.WithMessage(fmt.Sprintf("User with id %d not found", in.ID))
		}
		return nil, err
	}

	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		other, err := u.users.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != user.ID:
			return nil, domain.ErrEmailAlreadyExists.WithMessage("Error updating user, email already exists")
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}
		user.Email = email
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := u.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.DocumentID != nil {
		user.DocumentID = in.DocumentID
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all active users.
func (u *userUsecase) List(ctx context.Context) ([]*entity.User, error) {
	return u.users.ListActive(ctx)
}

// Get returns the user with the given id. Inactive users are refused with domain.ErrInactiveUser.
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	if id == 0 {
		return nil, ErrMissingID
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound.WithMessage(fmt.Sprintf("User with id %d not found", id))
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}
