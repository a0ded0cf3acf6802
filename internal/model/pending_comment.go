package model

import "time"

// PendingComment 待审核评论。匿名投稿或开启审核时的登录用户投稿先落到这里，
// 审核通过后物化为 Comment 并删除自身，拒绝则记录原因后删除。
type PendingComment struct {
	ID     uint64 `gorm:"primaryKey"`
	PostID uint64 `gorm:"not null;index:idx_pending_post" json:"postId"`

	// 登录用户投稿
	AuthorID *uint64 `json:"authorId"`
	// 匿名投稿
	AuthorName  string `gorm:"type:varchar(100)" json:"authorName"`
	AuthorEmail string `gorm:"type:varchar(255)" json:"authorEmail"`
	AuthorURL   string `gorm:"type:varchar(255)" json:"authorUrl"`

	ParentID *uint64 `json:"parentId"`
	Body     string  `gorm:"type:text;not null" json:"body"`

	IPAddress string `gorm:"type:varchar(45)" json:"ipAddress"`
	UserAgent string `gorm:"type:text" json:"userAgent"`

	CreatedAt       time.Time  `json:"createdAt"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	ReviewedBy      *uint64    `json:"reviewedBy"`
	RejectionReason string     `gorm:"type:text" json:"rejectionReason"`
}

func (PendingComment) TableName() string {
	return "pending_comments"
}
