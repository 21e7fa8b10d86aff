package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smash/internal/models"
	"smash/internal/repository"
)

func seedAd(t *testing.T, svc *AdService, ad *models.Ad) *models.Ad {
	t.Helper()
	created, err := svc.Create(context.Background(), ad)
	require.NoError(t, err)
	return created
}

func TestAdService_Serve(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdService(repository.NewAdRepository(db))
	ctx := context.Background()

	live := seedAd(t, svc, &models.Ad{
		Title:    "Court booking",
		ImageURL: "https://cdn.example.com/court.png",
		LinkURL:  "https://example.com/book",
		Slot:     models.AdSlotBanner,
		Active:   true,
		Weight:   1,
	})
	paused := seedAd(t, svc, &models.Ad{
		Title:    "Paused promo",
		ImageURL: "https://cdn.example.com/paused.png",
		LinkURL:  "https://example.com/paused",
		Slot:     models.AdSlotBanner,
		Active:   false,
		Weight:   1,
	})

	t.Run("paused ad is stored inactive", func(t *testing.T) {
		stored, err := svc.Get(ctx, paused.ID)
		require.NoError(t, err)
		assert.False(t, stored.Active)
	})

	t.Run("serves the live ad and counts the impression", func(t *testing.T) {
		got, err := svc.Serve(ctx, models.AdSlotBanner)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, live.ID, got.ID)

		stored, err := svc.Get(ctx, live.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Impressions)
	})

	t.Run("empty slot returns nothing", func(t *testing.T) {
		got, err := svc.Serve(ctx, models.AdSlotSidebar)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid slot is rejected", func(t *testing.T) {
		_, err := svc.Serve(ctx, models.AdSlot("popup"))
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestAdService_ServeSchedule(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdService(repository.NewAdRepository(db))
	ctx := context.Background()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-48 * time.Hour)
	soon := now.Add(time.Hour)
	later := now.Add(72 * time.Hour)

	current := seedAd(t, svc, &models.Ad{
		Title:    "Summer league",
		ImageURL: "https://cdn.example.com/league.png",
		LinkURL:  "https://example.com/league",
		Slot:     models.AdSlotFeed,
		Active:   true,
		Weight:   1,
		StartsAt: &past,
		EndsAt:   &later,
	})
	clinicEnd := now.Add(48 * time.Hour)
	seedAd(t, svc, &models.Ad{
		Title:    "Future clinic",
		ImageURL: "https://cdn.example.com/clinic.png",
		LinkURL:  "https://example.com/clinic",
		Slot:     models.AdSlotFeed,
		Active:   true,
		Weight:   1,
		StartsAt: &soon,
		EndsAt:   &clinicEnd,
	})

	got, err := svc.Serve(ctx, models.AdSlotFeed)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, current.ID, got.ID)

	// Past the window nothing is live anymore.
	svc.now = func() time.Time { return later.Add(time.Hour) }
	got, err = svc.Serve(ctx, models.AdSlotFeed)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdService_RecordClick(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdService(repository.NewAdRepository(db))
	ctx := context.Background()

	ad := seedAd(t, svc, &models.Ad{
		Title:    "Racket sale",
		ImageURL: "https://cdn.example.com/racket.png",
		LinkURL:  "https://example.com/sale",
		Slot:     models.AdSlotSidebar,
		Active:   true,
		Weight:   1,
	})

	got, err := svc.RecordClick(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/sale", got.LinkURL)

	stored, err := svc.Get(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Clicks)

	_, err = svc.RecordClick(ctx, 9999)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestAdService_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdService(repository.NewAdRepository(db))
	ctx := context.Background()

	starts := time.Now()
	before := starts.Add(-time.Hour)

	tests := []struct {
		name  string
		ad    models.Ad
		field string
	}{
		{
			name:  "missing title",
			ad:    models.Ad{ImageURL: "i", LinkURL: "l", Slot: models.AdSlotBanner, Weight: 1},
			field: "title",
		},
		{
			name:  "missing image",
			ad:    models.Ad{Title: "t", LinkURL: "l", Slot: models.AdSlotBanner, Weight: 1},
			field: "image_url",
		},
		{
			name:  "missing link",
			ad:    models.Ad{Title: "t", ImageURL: "i", Slot: models.AdSlotBanner, Weight: 1},
			field: "link_url",
		},
		{
			name:  "unknown slot",
			ad:    models.Ad{Title: "t", ImageURL: "i", LinkURL: "l", Slot: "footer", Weight: 1},
			field: "slot",
		},
		{
			name:  "zero weight",
			ad:    models.Ad{Title: "t", ImageURL: "i", LinkURL: "l", Slot: models.AdSlotBanner},
			field: "weight",
		},
		{
			name: "end before start",
			ad: models.Ad{
				Title: "t", ImageURL: "i", LinkURL: "l", Slot: models.AdSlotBanner,
				Weight: 1, StartsAt: &starts, EndsAt: &before,
			},
			field: "ends_at",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad := tt.ad
			_, err := svc.Create(ctx, &ad)
			assertFieldError(t, err, tt.field)
		})
	}
}

func TestAdService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdService(repository.NewAdRepository(db))
	ctx := context.Background()

	ad := seedAd(t, svc, &models.Ad{
		Title:    "Old creative",
		ImageURL: "https://cdn.example.com/old.png",
		LinkURL:  "https://example.com/old",
		Slot:     models.AdSlotBanner,
		Active:   true,
		Weight:   1,
	})

	updated, err := svc.Update(ctx, ad.ID, &models.Ad{
		Title:    "New creative",
		ImageURL: "https://cdn.example.com/new.png",
		LinkURL:  "https://example.com/new",
		Slot:     models.AdSlotSidebar,
		Active:   false,
		Weight:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, "New creative", updated.Title)
	assert.Equal(t, models.AdSlotSidebar, updated.Slot)
	assert.False(t, updated.Active)
	assert.Equal(t, 5, updated.Weight)

	require.NoError(t, svc.Delete(ctx, ad.ID))
	_, err = svc.Get(ctx, ad.ID)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestPickWeighted(t *testing.T) {
	heavy := &models.Ad{ID: 1, Weight: 10}
	only := &models.Ad{ID: 2, Weight: 3}

	t.Run("single candidate always wins", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			assert.Equal(t, only, pickWeighted([]*models.Ad{only}))
		}
	})

	t.Run("result is drawn from the candidates", func(t *testing.T) {
		set := []*models.Ad{heavy, only}
		for i := 0; i < 50; i++ {
			got := pickWeighted(set)
			assert.Contains(t, set, got)
		}
	})

	t.Run("all-zero weights still pick one", func(t *testing.T) {
		zeros := []*models.Ad{{ID: 3}, {ID: 4}}
		got := pickWeighted(zeros)
		assert.Contains(t, zeros, got)
	})
}
