package service

import (
	"context"
	"errors"
	"log/slog"

	"smash/internal/middleware"
	"smash/internal/models"
	"smash/internal/notifications"
	"smash/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionService applies like/dislike toggles. It works against the
// *gorm.DB directly because the ledger row and the denormalized counters
// must commit in one transaction.
type InteractionService struct {
	db       *gorm.DB
	notifier *notifications.Notifier
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(db *gorm.DB, notifier *notifications.Notifier) *InteractionService {
	return &InteractionService{db: db, notifier: notifier}
}

// ApplyReaction toggles the user's reaction on the target:
//   - no existing reaction: a ledger row is created (added)
//   - same kind exists: the row is deleted (removed)
//   - other kind exists: the row flips kind (changed)
//
// Counters move with the ledger in the same transaction and the fresh
// values are read back inside it, so the response reflects the commit.
func (s *InteractionService) ApplyReaction(
	ctx context.Context,
	userID uint,
	targetType models.TargetType,
	targetID uint,
	kind models.ReactionKind,
) (*models.ReactionResult, error) {
	if !models.ValidTargetType(targetType) {
		return nil, models.NewValidationError("invalid target type")
	}
	if !models.ValidReactionKind(kind) {
		return nil, models.NewValidationError("invalid reaction kind")
	}

	span, ctx := observability.NewSpan(ctx, "interaction.apply")
	defer span.End()
	span.AddAttributes(
		attribute.String("reaction.target_type", string(targetType)),
		attribute.Int("reaction.target_id", int(targetID)),
		attribute.String("reaction.kind", string(kind)),
	)

	result := &models.ReactionResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockTarget(tx, targetType, targetID); err != nil {
			return err
		}

		var existing models.Interaction
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, targetType, targetID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			interaction := models.Interaction{
				UserID:     userID,
				TargetType: targetType,
				TargetID:   targetID,
				Kind:       kind,
			}
			if err := tx.Create(&interaction).Error; err != nil {
				return err
			}
			if err := s.adjustCounter(tx, targetType, targetID, kind, +1); err != nil {
				return err
			}
			result.Action = models.ReactionAdded
			result.UserInteraction = kind

		case err != nil:
			return err

		case existing.Kind == kind:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := s.adjustCounter(tx, targetType, targetID, kind, -1); err != nil {
				return err
			}
			result.Action = models.ReactionRemoved

		default:
			// Update mutates existing.Kind in memory, so the old kind has
			// to be captured before it runs.
			oldKind := existing.Kind
			if err := tx.Model(&existing).Update("kind", kind).Error; err != nil {
				return err
			}
			if err := s.adjustCounter(tx, targetType, targetID, oldKind, -1); err != nil {
				return err
			}
			if err := s.adjustCounter(tx, targetType, targetID, kind, +1); err != nil {
				return err
			}
			result.Action = models.ReactionChanged
			result.UserInteraction = kind
		}

		likes, dislikes, err := s.readCounters(tx, targetType, targetID)
		if err != nil {
			return err
		}
		result.LikesCount = likes
		result.DislikesCount = dislikes
		return nil
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	span.AddAttributes(attribute.String("reaction.action", string(result.Action)))
	middleware.ReactionsApplied.WithLabelValues(string(targetType), string(result.Action)).Inc()

	if pubErr := s.notifier.PublishActivity(ctx, notifications.EventReactionApplied, map[string]interface{}{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
		"action":      result.Action,
		"kind":        kind,
	}); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish reaction event", "error", pubErr)
	}

	return result, nil
}

// GetUserReaction returns the caller's current reaction on the target,
// empty when there is none.
func (s *InteractionService) GetUserReaction(
	ctx context.Context,
	userID uint,
	targetType models.TargetType,
	targetID uint,
) (models.ReactionKind, error) {
	var interaction models.Interaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&interaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return interaction.Kind, nil
}

// lockTarget verifies the target exists and, on Postgres, takes a row
// lock for the rest of the transaction. SQLite serializes writers itself
// and does not accept FOR UPDATE.
func (s *InteractionService) lockTarget(tx *gorm.DB, targetType models.TargetType, targetID uint) error {
	q := tx.Select("id")
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var err error
	switch targetType {
	case models.TargetPost:
		err = q.First(&models.Post{}, targetID).Error
	case models.TargetComment:
		err = q.First(&models.Comment{}, targetID).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(targetNoun(targetType), targetID)
	}
	return err
}

// adjustCounter moves the like or dislike counter on the target row.
// Decrements clamp at zero so repair scripts and races cannot push a
// counter negative.
func (s *InteractionService) adjustCounter(
	tx *gorm.DB,
	targetType models.TargetType,
	targetID uint,
	kind models.ReactionKind,
	delta int,
) error {
	column := "likes_count"
	if kind == models.ReactionDislike {
		column = "dislikes_count"
	}

	var expr clause.Expr
	if delta > 0 {
		expr = gorm.Expr(column + " + 1")
	} else {
		expr = gorm.Expr("CASE WHEN " + column + " > 0 THEN " + column + " - 1 ELSE 0 END")
	}

	q := tx.Table(targetTable(targetType)).Where("id = ?", targetID)
	return q.UpdateColumn(column, expr).Error
}

func (s *InteractionService) readCounters(
	tx *gorm.DB,
	targetType models.TargetType,
	targetID uint,
) (int, int, error) {
	var row struct {
		LikesCount    int
		DislikesCount int
	}
	err := tx.Table(targetTable(targetType)).
		Select("likes_count", "dislikes_count").
		Where("id = ?", targetID).
		Scan(&row).Error
	return row.LikesCount, row.DislikesCount, err
}

func targetTable(t models.TargetType) string {
	if t == models.TargetComment {
		return "comments"
	}
	return "posts"
}

func targetNoun(t models.TargetType) string {
	if t == models.TargetComment {
		return "Comment"
	}
	return "Post"
}
