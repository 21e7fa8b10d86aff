package service

import (
	"context"
	"log/slog"
	"strings"

	"smash/internal/models"
	"smash/internal/notifications"
	"smash/internal/repository"
)

const maxCommentLen = 5000

// CommentService implements comment business logic, including the
// two-level reply tree rule.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	notifier *notifications.Notifier
	isStaff  func(ctx context.Context, userID uint) bool
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	notifier *notifications.Notifier,
	isStaff func(ctx context.Context, userID uint) bool,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifier: notifier, isStaff: isStaff}
}

// Create adds a comment to a post, or a reply to a top-level comment.
// Replies to replies are rejected, which keeps the tree two levels deep.
func (s *CommentService) Create(
	ctx context.Context,
	authorID, postID uint,
	parentID *uint,
	content string,
) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("comment is too long")
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, models.NewValidationError("parent comment belongs to a different post")
		}
		if parent.IsReply() {
			return nil, models.NewValidationError("replies can only be one level deep")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if pubErr := s.notifier.PublishActivity(ctx, notifications.EventCommentCreated, map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    postID,
		"user_id":    authorID,
		"is_reply":   parentID != nil,
	}); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish comment event", "error", pubErr)
	}

	return comment, nil
}

// Get returns a single comment by ID.
func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

// ListByPost returns the post's top-level comments with replies nested,
// after confirming the post exists.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// Update edits a comment's content. Only the author or staff may edit.
func (s *CommentService) Update(ctx context.Context, id, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("comment is too long")
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID && !s.isStaff(ctx, userID) {
		return nil, models.NewForbiddenError("you can only edit your own comments")
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment. Only the author or staff may delete.
func (s *CommentService) Delete(ctx context.Context, id, userID uint) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != userID && !s.isStaff(ctx, userID) {
		return models.NewForbiddenError("you can only delete your own comments")
	}
	return s.comments.Delete(ctx, id)
}
