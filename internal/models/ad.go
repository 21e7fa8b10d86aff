package models

import (
	"time"

	"gorm.io/gorm"
)

// AdSlot is the on-page placement an ad can occupy.
type AdSlot string

const (
	// AdSlotBanner is the top-of-page banner.
	AdSlotBanner AdSlot = "banner"
	// AdSlotSidebar is the right-hand sidebar.
	AdSlotSidebar AdSlot = "sidebar"
	// AdSlotFeed is an in-feed placement between posts.
	AdSlotFeed AdSlot = "feed"
)

// ValidAdSlot reports whether s is a known placement slot.
func ValidAdSlot(s AdSlot) bool {
	return s == AdSlotBanner || s == AdSlotSidebar || s == AdSlotFeed
}

// Ad is a simple ad placement managed by staff.
type Ad struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:120;not null" json:"title"`
	ImageURL string `gorm:"not null" json:"image_url"`
	LinkURL  string `gorm:"not null" json:"link_url"`
	Slot     AdSlot `gorm:"type:varchar(10);not null;index" json:"slot"`

	// No column default here: gorm omits zero-value fields that carry
	// one, which would store a paused ad as active.
	Active   bool       `gorm:"not null" json:"active"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	// Weight biases selection within a slot; live ads are picked
	// weighted-random.
	Weight int `gorm:"not null;default:1" json:"weight"`

	Impressions int64 `gorm:"not null;default:0" json:"impressions"`
	Clicks      int64 `gorm:"not null;default:0" json:"clicks"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Ad) TableName() string {
	return "ads"
}

// LiveAt reports whether the ad should be served at the given time.
func (a *Ad) LiveAt(now time.Time) bool {
	if !a.Active {
		return false
	}
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && now.After(*a.EndsAt) {
		return false
	}
	return true
}
