package models

import (
	"time"

	"gorm.io/gorm"
)

// SkillLevel describes a player's self-reported padel skill.
type SkillLevel string

const (
	// SkillBeginner marks a player new to padel.
	SkillBeginner SkillLevel = "beginner"
	// SkillIntermediate marks a club-level player.
	SkillIntermediate SkillLevel = "intermediate"
	// SkillAdvanced marks a tournament-level player.
	SkillAdvanced SkillLevel = "advanced"
	// SkillPro marks a professional player.
	SkillPro SkillLevel = "pro"
)

// ValidSkillLevel reports whether s is a known skill level.
func ValidSkillLevel(s SkillLevel) bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillPro:
		return true
	}
	return false
}

// CourtSide is the side of the court a player prefers.
type CourtSide string

const (
	// CourtSideLeft is the left (backhand) side.
	CourtSideLeft CourtSide = "left"
	// CourtSideRight is the right (forehand) side.
	CourtSideRight CourtSide = "right"
	// CourtSideBoth means no preference.
	CourtSideBoth CourtSide = "both"
)

// ValidCourtSide reports whether c is a known court side.
func ValidCourtSide(c CourtSide) bool {
	return c == CourtSideLeft || c == CourtSideRight || c == CourtSideBoth
}

// User represents a community member.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string `gorm:"not null" json:"-"`
	IsStaff  bool   `gorm:"not null;default:false" json:"is_staff"`

	// Profile
	DisplayName string     `gorm:"size:60" json:"display_name"`
	Bio         string     `gorm:"type:text" json:"bio"`
	AvatarURL   string     `json:"avatar_url"`
	SkillLevel  SkillLevel `gorm:"type:varchar(20);default:'beginner'" json:"skill_level"`
	CourtSide   CourtSide  `gorm:"type:varchar(10);default:'both'" json:"court_side"`

	// Moderation
	IsBanned       bool       `gorm:"not null;default:false" json:"is_banned"`
	BannedAt       *time.Time `json:"banned_at,omitempty"`
	BannedReason   string     `json:"banned_reason,omitempty"`
	BannedByUserID *uint      `json:"banned_by_user_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
