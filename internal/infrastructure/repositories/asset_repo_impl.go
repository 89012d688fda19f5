package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"monkframe.backend/internal/domain/entities"
	domainerrors "monkframe.backend/internal/domain/errors"
	domainrepos "monkframe.backend/internal/domain/repositories"
	"monkframe.backend/internal/infrastructure/models"
)

// AssetRepository implements asset data operations
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *entities.Asset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	m := assetToModel(asset)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	asset.CreatedAt = m.CreatedAt
	asset.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Asset, error) {
	var m models.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return assetToEntity(&m), nil
}

// Update updates the mutable columns of an asset
func (r *AssetRepository) Update(ctx context.Context, asset *entities.Asset) error {
	updates := map[string]interface{}{
		"title":       asset.Title,
		"price":       asset.Price,
		"category":    asset.Category,
		"tags":        strings.Join(asset.Tags, ","),
		"preview_url": asset.PreviewURL,
		"updated_at":  time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Asset{}).Where("id = ?", asset.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes an asset
func (r *AssetRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists assets with filters, newest-first
func (r *AssetRepository) List(ctx context.Context, filter domainrepos.AssetFilter, limit, offset int) ([]*entities.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Asset{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(tags) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Asset
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	assets := make([]*entities.Asset, 0, len(rows))
	for i := range rows {
		assets = append(assets, assetToEntity(&rows[i]))
	}
	return assets, total, nil
}

// AdjustLikes moves the aggregate like counter by delta. Callers only pass -1
// after a like row existed, so the counter cannot go negative.
func (r *AssetRepository) AdjustLikes(ctx context.Context, id uuid.UUID, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ?", id).
		Update("likes_count", gorm.Expr("likes_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// IncrementDownloads bumps the download counter
func (r *AssetRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func assetToModel(a *entities.Asset) *models.Asset {
	return &models.Asset{
		ID:            a.ID,
		OwnerID:       a.OwnerID,
		Title:         a.Title,
		Price:         a.Price,
		Category:      a.Category,
		Tags:          strings.Join(a.Tags, ","),
		PreviewURL:    a.PreviewURL,
		DownloadURL:   a.DownloadURL,
		LikesCount:    a.LikesCount,
		DownloadCount: a.DownloadCount,
	}
}

func assetToEntity(m *models.Asset) *entities.Asset {
	var tags []string
	if m.Tags != "" {
		tags = strings.Split(m.Tags, ",")
	}
	return &entities.Asset{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Title:         m.Title,
		Price:         m.Price,
		Category:      m.Category,
		Tags:          tags,
		PreviewURL:    m.PreviewURL,
		DownloadURL:   m.DownloadURL,
		LikesCount:    m.LikesCount,
		DownloadCount: m.DownloadCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
