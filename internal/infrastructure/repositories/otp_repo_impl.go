package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/infrastructure/models"
)

// OtpRepository implements one-time code persistence
type OtpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

// Upsert stores a code for the email, replacing any previous one. The unique
// index on email keeps the single-live-code invariant.
func (r *OtpRepository) Upsert(ctx context.Context, otp *entities.OtpCode) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	m := &models.OtpCode{
		ID:        otp.ID,
		Email:     otp.Email,
		Code:      otp.Code,
		ExpiresAt: otp.ExpiresAt,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(m).Error
}

// GetByEmail returns the live code for an email
func (r *OtpRepository) GetByEmail(ctx context.Context, email string) (*entities.OtpCode, error) {
	var m models.OtpCode
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.OtpCode{
		ID:        m.ID,
		Email:     m.Email,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// DeleteByEmail consumes the code for an email
func (r *OtpRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.OtpCode{}).Error
}

// DeleteExpired removes codes past their expiry, returning the count swept
func (r *OtpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.OtpCode{})
	return result.RowsAffected, result.Error
}
