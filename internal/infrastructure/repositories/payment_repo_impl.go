package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	"monkframe.backend/internal/infrastructure/models"
)

// PaymentRepository implements purchase persistence
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m := &models.Payment{
		ID:      payment.ID,
		UserID:  payment.UserID,
		AssetID: payment.AssetID,
		Amount:  payment.Amount,
		Status:  string(payment.Status),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// UpdateStatus transitions a payment's status
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists payments newest-first
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Payment
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, paymentToEntity(&rows[i]))
	}
	return payments, total, nil
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:        m.ID,
		UserID:    m.UserID,
		AssetID:   m.AssetID,
		Amount:    m.Amount,
		Status:    entities.PaymentStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
