package service

import (
	"context"
	"testing"

	"smash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReaction_AddRemoveChange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	reactor := createTestUser(t, db, "reactor", false)
	post := createTestPost(t, db, author)

	// First reaction creates a ledger row.
	result, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionAdded, result.Action)
	assert.Equal(t, 1, result.LikesCount)
	assert.Equal(t, 0, result.DislikesCount)
	assert.Equal(t, models.ReactionLike, result.UserInteraction)

	// Opposite kind flips the row and moves both counters.
	result, err = svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionChanged, result.Action)
	assert.Equal(t, 0, result.LikesCount)
	assert.Equal(t, 1, result.DislikesCount)
	assert.Equal(t, models.ReactionDislike, result.UserInteraction)

	// Same kind again removes the row.
	result, err = svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionRemoved, result.Action)
	assert.Equal(t, 0, result.LikesCount)
	assert.Equal(t, 0, result.DislikesCount)
	assert.Empty(t, result.UserInteraction)

	// The ledger holds no row afterwards.
	var count int64
	db.Model(&models.Interaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestApplyReaction_ToggleTwiceIsIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	reactor := createTestUser(t, db, "reactor", false)
	post := createTestPost(t, db, author)

	_, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)

	var fresh models.Post
	require.NoError(t, db.First(&fresh, post.ID).Error)
	assert.Equal(t, 0, fresh.LikesCount)
	assert.Equal(t, 0, fresh.DislikesCount)
}

func TestApplyReaction_OnComment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	reactor := createTestUser(t, db, "reactor", false)
	post := createTestPost(t, db, author)
	comment := createTestComment(t, db, author, post)

	result, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetComment, comment.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionAdded, result.Action)
	assert.Equal(t, 1, result.DislikesCount)

	// The comment row carries the counter; the post is untouched.
	var freshComment models.Comment
	require.NoError(t, db.First(&freshComment, comment.ID).Error)
	assert.Equal(t, 1, freshComment.DislikesCount)

	var freshPost models.Post
	require.NoError(t, db.First(&freshPost, post.ID).Error)
	assert.Equal(t, 0, freshPost.DislikesCount)
}

func TestApplyReaction_CountersNeverGoNegative(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	reactor := createTestUser(t, db, "reactor", false)
	post := createTestPost(t, db, author)

	// Ledger row exists but the counter is stale at zero, as after a
	// manual repair. Removing must clamp instead of underflowing.
	require.NoError(t, db.Create(&models.Interaction{
		UserID:     reactor.ID,
		TargetType: models.TargetPost,
		TargetID:   post.ID,
		Kind:       models.ReactionLike,
	}).Error)

	result, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionRemoved, result.Action)
	assert.Equal(t, 0, result.LikesCount)
}

func TestApplyReaction_SeparateUsersAccumulate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	post := createTestPost(t, db, author)

	for i, name := range []string{"r1", "r2", "r3"} {
		reactor := createTestUser(t, db, name, false)
		result, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, i+1, result.LikesCount)
	}
}

func TestApplyReaction_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	_, err := svc.ApplyReaction(ctx, 1, "game", 1, models.ReactionLike)
	assertErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.ApplyReaction(ctx, 1, models.TargetPost, 1, "love")
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func TestApplyReaction_MissingTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	reactor := createTestUser(t, db, "reactor", false)

	_, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, 9999, models.ReactionLike)
	assertErrorCode(t, err, "NOT_FOUND")

	_, err = svc.ApplyReaction(ctx, reactor.ID, models.TargetComment, 9999, models.ReactionLike)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestApplyReaction_SoftDeletedTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	reactor := createTestUser(t, db, "reactor", false)
	post := createTestPost(t, db, author)
	comment := createTestComment(t, db, author, post)

	require.NoError(t, db.Delete(&models.Comment{}, comment.ID).Error)
	_, err := svc.ApplyReaction(ctx, reactor.ID, models.TargetComment, comment.ID, models.ReactionLike)
	assertErrorCode(t, err, "NOT_FOUND")

	require.NoError(t, db.Delete(&models.Post{}, post.ID).Error)
	_, err = svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestGetUserReaction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, noopNotifier())
	ctx := context.Background()

	author := createTestUser(t, db, "author", false)
	reactor := createTestUser(t, db, "reactor", false)
	post := createTestPost(t, db, author)

	kind, err := svc.GetUserReaction(ctx, reactor.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Empty(t, kind)

	_, err = svc.ApplyReaction(ctx, reactor.ID, models.TargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)

	kind, err = svc.GetUserReaction(ctx, reactor.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLike, kind)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
