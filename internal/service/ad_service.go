package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"smash/internal/models"
	"smash/internal/repository"
)

// AdService serves ad placements and lets staff manage the inventory.
type AdService struct {
	ads repository.AdRepository
	now func() time.Time
}

// NewAdService creates a new AdService.
func NewAdService(ads repository.AdRepository) *AdService {
	return &AdService{ads: ads, now: time.Now}
}

// Serve picks one live ad for the slot, weighted-random over the live
// set, and counts the impression. Returns nil when the slot is empty.
func (s *AdService) Serve(ctx context.Context, slot models.AdSlot) (*models.Ad, error) {
	if !models.ValidAdSlot(slot) {
		return nil, models.NewValidationError("invalid ad slot")
	}

	live, err := s.ads.ListLiveBySlot(ctx, slot, s.now())
	if err != nil {
		return nil, err
	}
	if len(live) == 0 {
		return nil, nil
	}

	ad := pickWeighted(live)
	if err := s.ads.IncrementImpressions(ctx, ad.ID); err != nil {
		return nil, err
	}
	return ad, nil
}

// RecordClick counts a click-through on the ad.
func (s *AdService) RecordClick(ctx context.Context, id uint) (*models.Ad, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ads.IncrementClicks(ctx, id); err != nil {
		return nil, err
	}
	return ad, nil
}

// Create validates and stores a new ad placement.
func (s *AdService) Create(ctx context.Context, ad *models.Ad) (*models.Ad, error) {
	if err := validateAd(ad); err != nil {
		return nil, err
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Get returns a single ad by ID.
func (s *AdService) Get(ctx context.Context, id uint) (*models.Ad, error) {
	return s.ads.GetByID(ctx, id)
}

// List returns a page of all ads, live or not.
func (s *AdService) List(ctx context.Context, limit, offset int) ([]*models.Ad, error) {
	return s.ads.ListAll(ctx, limit, offset)
}

// Update replaces the ad's editable fields.
func (s *AdService) Update(ctx context.Context, id uint, updated *models.Ad) (*models.Ad, error) {
	if err := validateAd(updated); err != nil {
		return nil, err
	}

	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ad.Title = updated.Title
	ad.ImageURL = updated.ImageURL
	ad.LinkURL = updated.LinkURL
	ad.Slot = updated.Slot
	ad.Active = updated.Active
	ad.StartsAt = updated.StartsAt
	ad.EndsAt = updated.EndsAt
	ad.Weight = updated.Weight

	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Delete removes the ad from rotation.
func (s *AdService) Delete(ctx context.Context, id uint) error {
	return s.ads.Delete(ctx, id)
}

func validateAd(ad *models.Ad) error {
	fieldErrs := models.NewFieldErrors()
	if strings.TrimSpace(ad.Title) == "" {
		fieldErrs.Add("title", "title is required")
	}
	if strings.TrimSpace(ad.ImageURL) == "" {
		fieldErrs.Add("image_url", "image URL is required")
	}
	if strings.TrimSpace(ad.LinkURL) == "" {
		fieldErrs.Add("link_url", "link URL is required")
	}
	if !models.ValidAdSlot(ad.Slot) {
		fieldErrs.Add("slot", "must be one of: banner, sidebar, feed")
	}
	if ad.Weight < 1 {
		fieldErrs.Add("weight", "weight must be at least 1")
	}
	if ad.StartsAt != nil && ad.EndsAt != nil && !ad.EndsAt.After(*ad.StartsAt) {
		fieldErrs.Add("ends_at", "schedule end must be after the start")
	}
	return fieldErrs.ErrOrNil()
}

// pickWeighted selects an ad with probability proportional to its weight.
func pickWeighted(ads []*models.Ad) *models.Ad {
	total := 0
	for _, ad := range ads {
		if ad.Weight > 0 {
			total += ad.Weight
		}
	}
	if total == 0 {
		return ads[rand.Intn(len(ads))]
	}

	n := rand.Intn(total)
	for _, ad := range ads {
		if ad.Weight <= 0 {
			continue
		}
		if n < ad.Weight {
			return ad
		}
		n -= ad.Weight
	}
	return ads[len(ads)-1]
}
