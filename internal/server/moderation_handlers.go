package server

import (
	"smash/internal/models"
	"smash/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetReportQueue handles GET /api/admin/reports
func (s *Server) GetReportQueue(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.ReportFilter{
		Status:     models.ReportStatus(c.Query("status")),
		Reason:     models.ReportReason(c.Query("reason")),
		TargetType: models.TargetType(c.Query("target_type")),
		ReporterID: uint(c.QueryInt("reporter_id", 0)),
	}

	reports, total, err := s.reportService.ListQueue(c.UserContext(), filter, limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// ReviewReport handles POST /api/admin/reports/:id/review
func (s *Server) ReviewReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	report, err := s.reportService.MarkUnderReview(c.UserContext(), id, currentUserID(c), true)
	if err != nil {
		return errResponse(c, err)
	}
	return transitionResponse(c, report)
}

// ResolveReport handles POST /api/admin/reports/:id/resolve
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		ActionTaken string `json:"action_taken"`
		AdminNotes  string `json:"admin_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.Resolve(c.UserContext(), id, currentUserID(c), true, req.ActionTaken, req.AdminNotes)
	if err != nil {
		return errResponse(c, err)
	}
	return transitionResponse(c, report)
}

// quickActions maps the shortcut names to the action_taken value a full
// resolve would carry.
var quickActions = map[string]string{
	"remove_content": "content removed",
	"warn_user":      "user warned",
	"ban_user":       "user banned",
	"dismiss":        "no action needed",
}

// QuickAction handles POST /api/admin/reports/:id/quick/:action. It is a
// one-call resolve with a canned action_taken and no notes.
func (s *Server) QuickAction(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	actionTaken, ok := quickActions[c.Params("action")]
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown quick action"))
	}

	report, err := s.reportService.Resolve(c.UserContext(), id, currentUserID(c), true, actionTaken, "")
	if err != nil {
		return errResponse(c, err)
	}
	return transitionResponse(c, report)
}

// RejectReport handles POST /api/admin/reports/:id/reject
func (s *Server) RejectReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req struct {
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.Reject(c.UserContext(), id, currentUserID(c), true, req.AdminNotes)
	if err != nil {
		return errResponse(c, err)
	}
	return transitionResponse(c, report)
}

// ReopenReport handles POST /api/admin/reports/:id/reopen
func (s *Server) ReopenReport(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	report, err := s.reportService.Reopen(c.UserContext(), id, currentUserID(c), true)
	if err != nil {
		return errResponse(c, err)
	}
	return transitionResponse(c, report)
}

func transitionResponse(c *fiber.Ctx, report *models.Report) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"report_id":  report.ID,
		"new_status": report.Status,
	})
}
