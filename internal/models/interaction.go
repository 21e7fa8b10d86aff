package models

import (
	"time"
)

// TargetType discriminates the polymorphic target of interactions and reports.
type TargetType string

const (
	// TargetPost targets a post.
	TargetPost TargetType = "post"
	// TargetComment targets a comment.
	TargetComment TargetType = "comment"
)

// ValidTargetType reports whether t is a known target type.
func ValidTargetType(t TargetType) bool {
	return t == TargetPost || t == TargetComment
}

// ReactionKind is the kind of reaction a user can leave on a target.
type ReactionKind string

const (
	// ReactionLike is a positive reaction.
	ReactionLike ReactionKind = "like"
	// ReactionDislike is a negative reaction.
	ReactionDislike ReactionKind = "dislike"
)

// ValidReactionKind reports whether k is a known reaction kind.
func ValidReactionKind(k ReactionKind) bool {
	return k == ReactionLike || k == ReactionDislike
}

// Interaction is one row of the reaction ledger: a single user's reaction
// to a single target. The unique index guarantees at most one row per
// (user, target) pair; the database rejects a racing duplicate insert.
type Interaction struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetType TargetType   `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_target" json:"target_type"`
	TargetID   uint         `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	Kind       ReactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Interaction) TableName() string {
	return "interactions"
}

// ReactionAction is the outcome of applying a reaction to a target.
type ReactionAction string

const (
	// ReactionAdded means a new ledger row was created.
	ReactionAdded ReactionAction = "added"
	// ReactionRemoved means the existing ledger row was deleted (toggle-off).
	ReactionRemoved ReactionAction = "removed"
	// ReactionChanged means the existing ledger row flipped kind.
	ReactionChanged ReactionAction = "changed"
)

// ReactionResult is returned by the interaction toggle service and rendered
// verbatim by the HTTP layer.
type ReactionResult struct {
	Action        ReactionAction `json:"action"`
	LikesCount    int            `json:"likes_count"`
	DislikesCount int            `json:"dislikes_count"`
	// UserInteraction is the user's reaction after the operation,
	// empty when the reaction was removed.
	UserInteraction ReactionKind `json:"user_interaction,omitempty"`
}
