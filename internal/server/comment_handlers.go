package server

import (
	"smash/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.UserContext(), currentUserID(c), postID, req.ParentID, req.Content)
	if err != nil {
		return errResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, handled := parseID(c, "id")
	if handled {
		return nil
	}

	comments, err := s.commentService.ListByPost(c.UserContext(), postID)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.UserContext(), id, currentUserID(c), req.Content)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	if err := s.commentService.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return errResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
