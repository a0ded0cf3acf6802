package model

import (
	"time"
)

type Comment struct {
	ID         uint64     `gorm:"primaryKey"`
	PostID     uint64     `gorm:"not null;index:idx_post_approved,priority:1" json:"postId"`
	AuthorID   uint64     `gorm:"not null" json:"authorId"`
	ParentID   *uint64    `gorm:"index:idx_comment_parent" json:"parentId"` // 为空表示直接评论帖子
	Body       string     `gorm:"type:text;not null" json:"body"`
	IsApproved bool       `gorm:"type:tinyint(1);not null;default:0;index:idx_post_approved,priority:2" json:"isApproved"`
	IsDeleted  bool       `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	DeletedAt  *time.Time `json:"deletedAt"`
	IsEdited   bool       `gorm:"type:tinyint(1);not null;default:0" json:"isEdited"`
	EditCount  int        `gorm:"not null;default:0" json:"editCount"`
	CreatedAt  time.Time  `gorm:"index:idx_comment_created" json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// 关联关系
	Parent  *Comment         `gorm:"foreignKey:ParentID;references:ID"`
	Replies []Comment        `gorm:"foreignKey:ParentID;references:ID"`
	History []CommentHistory `gorm:"foreignKey:CommentID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply 是否为楼中楼回复
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

const commentPreviewLength = 100

// Preview 审核列表展示用摘要
func (c *Comment) Preview() string {
	if len(c.Body) > commentPreviewLength {
		return c.Body[:commentPreviewLength] + "..."
	}
	return c.Body
}
