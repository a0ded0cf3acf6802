package model

import (
	"time"
)

// Reaction 帖子表态。(post, user) 组合主键保证每人每帖最多一条。
type Reaction struct {
	PostID       uint64    `gorm:"primaryKey;index:idx_reaction_post" json:"postId"`
	UserID       uint64    `gorm:"primaryKey" json:"userId"`
	ReactionType string    `gorm:"type:varchar(20);not null;default:'LIKE'" json:"reactionType"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}
