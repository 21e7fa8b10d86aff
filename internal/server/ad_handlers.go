package server

import (
	"time"

	"smash/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ServeAd handles GET /api/ads/slots/:slot
func (s *Server) ServeAd(c *fiber.Ctx) error {
	slot := models.AdSlot(c.Params("slot"))

	ad, err := s.adService.Serve(c.UserContext(), slot)
	if err != nil {
		return errResponse(c, err)
	}
	if ad == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(ad)
}

// AdClick handles POST /api/ads/:id/click
func (s *Server) AdClick(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	ad, err := s.adService.RecordClick(c.UserContext(), id)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"link_url": ad.LinkURL,
	})
}

type adRequest struct {
	Title    string     `json:"title"`
	ImageURL string     `json:"image_url"`
	LinkURL  string     `json:"link_url"`
	Slot     string     `json:"slot"`
	Active   *bool      `json:"active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Weight   int        `json:"weight"`
}

func (r adRequest) toModel() *models.Ad {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	weight := r.Weight
	if weight == 0 {
		weight = 1
	}
	return &models.Ad{
		Title:    r.Title,
		ImageURL: r.ImageURL,
		LinkURL:  r.LinkURL,
		Slot:     models.AdSlot(r.Slot),
		Active:   active,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		Weight:   weight,
	}
}

// GetAds handles GET /api/admin/ads
func (s *Server) GetAds(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	ads, err := s.adService.List(c.UserContext(), limit, offset)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"ads":    ads,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateAd handles POST /api/admin/ads
func (s *Server) CreateAd(c *fiber.Ctx) error {
	var req adRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ad, err := s.adService.Create(c.UserContext(), req.toModel())
	if err != nil {
		return errResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ad)
}

// UpdateAd handles PUT /api/admin/ads/:id
func (s *Server) UpdateAd(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	var req adRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ad, err := s.adService.Update(c.UserContext(), id, req.toModel())
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(ad)
}

// DeleteAd handles DELETE /api/admin/ads/:id
func (s *Server) DeleteAd(c *fiber.Ctx) error {
	id, handled := parseID(c, "id")
	if handled {
		return nil
	}

	if err := s.adService.Delete(c.UserContext(), id); err != nil {
		return errResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
