package service

import (
	"context"
	"strings"

	"smash/internal/models"
	"smash/internal/repository"
)

const (
	maxPostTitleLen   = 200
	maxPostContentLen = 20000
)

// PostService implements post business logic on top of the repository.
type PostService struct {
	posts   repository.PostRepository
	isStaff func(ctx context.Context, userID uint) bool
}

// NewPostService creates a new PostService. isStaff resolves whether a
// user may act on content they do not own.
func NewPostService(posts repository.PostRepository, isStaff func(ctx context.Context, userID uint) bool) *PostService {
	return &PostService{posts: posts, isStaff: isStaff}
}

// Create validates and persists a new post for the author.
func (s *PostService) Create(ctx context.Context, authorID uint, title, content, imageURL string) (*models.Post, error) {
	fieldErrs := models.NewFieldErrors()
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		fieldErrs.Add("title", "title is required")
	} else if len(title) > maxPostTitleLen {
		fieldErrs.Add("title", "title is too long")
	}
	if content == "" {
		fieldErrs.Add("content", "content is required")
	} else if len(content) > maxPostContentLen {
		fieldErrs.Add("content", "content is too long")
	}
	if fieldErrs.HasErrors() {
		return nil, fieldErrs
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		UserID:   authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns a single post by ID.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns a page of posts. sort is one of new, top, active.
func (s *PostService) List(ctx context.Context, limit, offset int, sort string) ([]*models.Post, error) {
	return s.posts.List(ctx, limit, offset, sort)
}

// ListByAuthor returns a page of the author's posts.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.posts.GetByUserID(ctx, authorID, limit, offset)
}

// Search returns posts matching the query in title or content.
func (s *PostService) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Post{}, nil
	}
	return s.posts.Search(ctx, query, limit, offset)
}

// Update edits the post. Only the author or staff may edit.
func (s *PostService) Update(ctx context.Context, id, userID uint, title, content, imageURL string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID && !s.isStaff(ctx, userID) {
		return nil, models.NewForbiddenError("you can only edit your own posts")
	}

	if title = strings.TrimSpace(title); title != "" {
		if len(title) > maxPostTitleLen {
			return nil, models.NewValidationError("title is too long")
		}
		post.Title = title
	}
	if content = strings.TrimSpace(content); content != "" {
		if len(content) > maxPostContentLen {
			return nil, models.NewValidationError("content is too long")
		}
		post.Content = content
	}
	if imageURL != "" {
		post.ImageURL = imageURL
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes the post. Only the author or staff may delete.
func (s *PostService) Delete(ctx context.Context, id, userID uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID && !s.isStaff(ctx, userID) {
		return models.NewForbiddenError("you can only delete your own posts")
	}
	return s.posts.Delete(ctx, id)
}

// Purge permanently removes the post and its dependent rows. Staff only.
func (s *PostService) Purge(ctx context.Context, id, userID uint) error {
	if !s.isStaff(ctx, userID) {
		return models.NewForbiddenError("only staff can permanently delete posts")
	}
	return s.posts.HardDelete(ctx, id)
}
