package repository

import (
	"context"
	"errors"
	"time"

	"smash/internal/cache"
	"smash/internal/models"

	"gorm.io/gorm"
)

// AdRepository defines the interface for ad placement persistence.
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id uint) (*models.Ad, error)
	ListLiveBySlot(ctx context.Context, slot models.AdSlot, now time.Time) ([]*models.Ad, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Ad, error)
	Update(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id uint) error
	IncrementImpressions(ctx context.Context, id uint) error
	IncrementClicks(ctx context.Context, id uint) error
}

type adRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a new AdRepository.
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return err
	}
	cache.InvalidateAdsSlot(ctx, string(ad.Slot))
	return nil
}

func (r *adRepository) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ad", id)
		}
		return nil, err
	}
	return &ad, nil
}

// ListLiveBySlot returns active ads in the slot whose schedule window
// contains now. Results are cached briefly; weighting happens in the
// service on top of the cached slice.
func (r *adRepository) ListLiveBySlot(
	ctx context.Context,
	slot models.AdSlot,
	now time.Time,
) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := cache.Aside(ctx, cache.AdsSlotKey(string(slot)), &ads, cache.AdsSlotTTL, func() error {
		return r.db.WithContext(ctx).
			Where("slot = ? AND active = ?", slot, true).
			Where("(starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at > ?)", now, now).
			Order("weight DESC").
			Find(&ads).Error
	})
	return ads, err
}

func (r *adRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error
	return ads, err
}

func (r *adRepository) Update(ctx context.Context, ad *models.Ad) error {
	if err := r.db.WithContext(ctx).Save(ad).Error; err != nil {
		return err
	}
	cache.InvalidateAdsSlot(ctx, string(ad.Slot))
	return nil
}

func (r *adRepository) Delete(ctx context.Context, id uint) error {
	ad, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Ad{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateAdsSlot(ctx, string(ad.Slot))
	return nil
}

func (r *adRepository) IncrementImpressions(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Ad{}).
		Where("id = ?", id).
		UpdateColumn("impressions", gorm.Expr("impressions + 1")).Error
}

func (r *adRepository) IncrementClicks(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Ad{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1")).Error
}
