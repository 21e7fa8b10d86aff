package service

import (
	"context"
	"strings"
	"time"

	"smash/internal/models"
	"smash/internal/repository"
)

const (
	maxDisplayNameLen = 50
	maxBioLen         = 500
)

// UpdateProfileInput carries the editable padel profile fields. Nil
// pointers mean "leave unchanged".
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	SkillLevel  *models.SkillLevel
	CourtSide   *models.CourtSide
}

// UserService implements profile and account administration logic.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetProfile returns a user along with their recent posts.
func (s *UserService) GetProfile(ctx context.Context, id uint, recentPosts int) (*models.User, error) {
	return s.users.GetByIDWithPosts(ctx, id, recentPosts)
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}

// Search returns users whose username or display name matches the query.
func (s *UserService) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	return s.users.Search(ctx, query, limit, offset)
}

// UpdateProfile applies the given profile changes to the caller's own
// account.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fieldErrs := models.NewFieldErrors()
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if len(name) > maxDisplayNameLen {
			fieldErrs.Add("display_name", "display name is too long")
		} else {
			user.DisplayName = name
		}
	}
	if input.Bio != nil {
		if len(*input.Bio) > maxBioLen {
			fieldErrs.Add("bio", "bio is too long")
		} else {
			user.Bio = *input.Bio
		}
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.SkillLevel != nil {
		if !models.ValidSkillLevel(*input.SkillLevel) {
			fieldErrs.Add("skill_level", "must be one of: beginner, intermediate, advanced, pro")
		} else {
			user.SkillLevel = *input.SkillLevel
		}
	}
	if input.CourtSide != nil {
		if !models.ValidCourtSide(*input.CourtSide) {
			fieldErrs.Add("court_side", "must be one of: left, right, both")
		} else {
			user.CourtSide = *input.CourtSide
		}
	}
	if fieldErrs.HasErrors() {
		return nil, fieldErrs
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Ban suspends an account and records who did it.
func (s *UserService) Ban(ctx context.Context, userID, staffID uint, reason string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsStaff {
		return nil, models.NewForbiddenError("staff accounts cannot be banned")
	}

	now := time.Now().UTC()
	user.IsBanned = true
	user.BannedAt = &now
	user.BannedReason = reason
	user.BannedByUserID = &staffID

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Unban lifts a suspension and clears the ban audit fields.
func (s *UserService) Unban(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsBanned = false
	user.BannedAt = nil
	user.BannedReason = ""
	user.BannedByUserID = nil

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	return s.users.Delete(ctx, userID)
}
