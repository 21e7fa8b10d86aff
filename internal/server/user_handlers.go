package server

import (
	"smash/internal/models"
	"smash/internal/service"

	"github.com/gofiber/fiber/v2"
)

const profileRecentPosts = 10

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), currentUserID(c), profileRecentPosts)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string            `json:"display_name"`
		Bio         *string            `json:"bio"`
		AvatarURL   *string            `json:"avatar_url"`
		SkillLevel  *models.SkillLevel `json:"skill_level"`
		CourtSide   *models.CourtSide  `json:"court_side"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), service.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		SkillLevel:  req.SkillLevel,
		CourtSide:   req.CourtSide,
	})
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	user, err := s.userService.GetProfile(c.UserContext(), id, profileRecentPosts)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.userService.List(c.UserContext(), limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// SearchUsers handles GET /api/users/search
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.userService.Search(c.UserContext(), c.Query("q"), limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}
	limit, offset := parsePagination(c)

	posts, err := s.postService.ListByAuthor(c.UserContext(), id, limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// BanUser handles POST /api/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Ban(c.UserContext(), id, currentUserID(c), req.Reason)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(user)
}

// UnbanUser handles POST /api/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	user, err := s.userService.Unban(c.UserContext(), id)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(user)
}
