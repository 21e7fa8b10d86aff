package server

import (
	"smash/internal/models"
	"smash/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		TargetType    models.TargetType   `json:"target_type"`
		TargetID      uint                `json:"target_id"`
		Reason        models.ReportReason `json:"reason"`
		Description   string              `json:"description"`
		EvidenceImage string              `json:"evidence_image"`
		EvidenceURL   string              `json:"evidence_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.Create(c.UserContext(), currentUserID(c), service.CreateReportInput{
		TargetType:    req.TargetType,
		TargetID:      req.TargetID,
		Reason:        req.Reason,
		Description:   req.Description,
		EvidenceImage: req.EvidenceImage,
		EvidenceURL:   req.EvidenceURL,
	})
	if err != nil {
		return errResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetMyReports handles GET /api/reports/me
func (s *Server) GetMyReports(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	reports, err := s.reportService.ListMine(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"reports": reports,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetReport handles GET /api/reports/:id
func (s *Server) GetReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	userID := currentUserID(c)
	staff, err := s.isStaff(c, userID)
	if err != nil {
		return errResponse(c, err)
	}

	report, err := s.reportService.Get(c.UserContext(), id, userID, staff)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(report)
}

// UpdateReport handles PUT /api/reports/:id
func (s *Server) UpdateReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	staff, err := s.isStaff(c, userID)
	if err != nil {
		return errResponse(c, err)
	}

	report, err := s.reportService.UpdateDescription(c.UserContext(), id, userID, staff, req.Description)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(report)
}

// WithdrawReport handles DELETE /api/reports/:id
func (s *Server) WithdrawReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	userID := currentUserID(c)
	staff, err := s.isStaff(c, userID)
	if err != nil {
		return errResponse(c, err)
	}

	if err := s.reportService.Withdraw(c.UserContext(), id, userID, staff); err != nil {
		return errResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
