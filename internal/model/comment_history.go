package model

import "time"

// CommentHistory 评论编辑前的正文快照，只追加不修改
type CommentHistory struct {
	ID        uint64    `gorm:"primaryKey"`
	CommentID uint64    `gorm:"not null;index:idx_history_comment" json:"commentId"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	EditedAt  time.Time `gorm:"not null" json:"editedAt"`
}

func (CommentHistory) TableName() string {
	return "comment_histories"
}
