package server

import (
	"smash/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ReactToPost handles POST /api/posts/:id/reactions
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	return s.react(c, models.TargetPost)
}

// ReactToComment handles POST /api/comments/:id/reactions
func (s *Server) ReactToComment(c *fiber.Ctx) error {
	return s.react(c, models.TargetComment)
}

func (s *Server) react(c *fiber.Ctx, targetType models.TargetType) error {
	targetID, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		Kind models.ReactionKind `json:"kind"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.interactionService.ApplyReaction(
		c.UserContext(), currentUserID(c), targetType, targetID, req.Kind)
	if err != nil {
		return errResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status":           "ok",
		"action":           result.Action,
		"likes_count":      result.LikesCount,
		"dislikes_count":   result.DislikesCount,
		"user_interaction": result.UserInteraction,
	})
}
