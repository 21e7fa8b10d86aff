package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A comment may reply to another
// comment via ParentID; the schema allows arbitrary depth but the API
// treats one reply level as canonical.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`

	LikesCount    int `gorm:"not null;default:0" json:"likes_count"`
	DislikesCount int `gorm:"not null;default:0" json:"dislikes_count"`

	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment replies to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
