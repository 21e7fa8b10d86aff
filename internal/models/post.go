// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the SMASH community feed.
//
// LikesCount and DislikesCount are denormalized from the interactions
// ledger; every ledger mutation updates them in the same transaction
// (see service.InteractionService).
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:300;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`

	LikesCount    int `gorm:"not null;default:0" json:"likes_count"`
	DislikesCount int `gorm:"not null;default:0" json:"dislikes_count"`
	CommentsCount int `gorm:"not null;default:0" json:"comments_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
