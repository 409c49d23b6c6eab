package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// otpGorm implements usecase.OTPRepository on top of GORM.
type otpGorm struct {
	db *gorm.DB
}

var _ usecase.OTPRepository = (*otpGorm)(nil)

// NewOTPGorm creates an OTP repository bound to db.
func NewOTPGorm(db *gorm.DB) *otpGorm {
	return &otpGorm{db: db}
}

// Create inserts otp.
func (r *otpGorm) Create(ctx context.Context, otp *entity.OTP) error {
	if otp == nil {
		return errors.New("otp is nil")
	}
	return r.db.WithContext(ctx).Create(otp).Error
}

// FindByCode returns the lowest-id row carrying code, whatever its active flag.
func (r *otpGorm) FindByCode(ctx context.Context, code string) (*entity.OTP, error) {
	var otp entity.OTP
	if err := r.db.WithContext(ctx).Where("code = ?", code).Order("id ASC").First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

// CodeInUse reports whether any row carries code.
func (r *otpGorm) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.OTP{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// Deactivate clears is_active with a conditional update so only one caller can consume the OTP.
func (r *otpGorm) Deactivate(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.OTP{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
