package repository

import (
	"context"
	"errors"

	"smash/internal/models"

	"gorm.io/gorm"
)

// InteractionRepository provides read access to the reaction ledger.
// Writes go through the interaction service transaction, which needs the
// ledger row and the counter update to commit together.
type InteractionRepository interface {
	Get(ctx context.Context, userID uint, targetType models.TargetType, targetID uint) (*models.Interaction, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Interaction, error)
	CountByTarget(ctx context.Context, targetType models.TargetType, targetID uint, kind models.ReactionKind) (int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// Get returns the user's reaction on the target, or nil when none exists.
func (r *interactionRepository) Get(
	ctx context.Context,
	userID uint,
	targetType models.TargetType,
	targetID uint,
) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&interaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) ListByUser(
	ctx context.Context,
	userID uint,
	limit, offset int,
) ([]*models.Interaction, error) {
	var interactions []*models.Interaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&interactions).Error
	return interactions, err
}

func (r *interactionRepository) CountByTarget(
	ctx context.Context,
	targetType models.TargetType,
	targetID uint,
	kind models.ReactionKind,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("target_type = ? AND target_id = ? AND kind = ?", targetType, targetID, kind).
		Count(&count).Error
	return count, err
}
