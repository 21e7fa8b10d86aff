package server

import (
	"smash/internal/models"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req.Title, req.Content, req.ImageURL)
	if err != nil {
		return errResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	sort := c.Query("sort", "new")

	posts, err := s.postService.List(c.UserContext(), limit, offset, sort)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(post)
}

// SearchPosts handles GET /api/posts/search
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	posts, err := s.postService.Search(c.UserContext(), c.Query("q"), limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.UserContext(), id, currentUserID(c), req.Title, req.Content, req.ImageURL)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return errResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PurgePost handles DELETE /api/admin/posts/:id/purge
func (s *Server) PurgePost(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	if err := s.postService.Purge(c.UserContext(), id, currentUserID(c)); err != nil {
		return errResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
