package model

import (
	"time"
)

// PostMedia 帖子与媒体库条目的关联，同一条目可挂到多个帖子。
// (post, item) 组合唯一，禁止重复挂载。
type PostMedia struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	PostID        uint64    `gorm:"not null;uniqueIndex:idx_post_item,priority:1" json:"post_id"`
	ItemID        uint64    `gorm:"not null;uniqueIndex:idx_post_item,priority:2" json:"item_id"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	CustomAltText string    `gorm:"type:varchar(500)" json:"custom_alt_text"` // 覆盖媒体库条目自带的 alt
	CustomCaption string    `gorm:"type:varchar(500)" json:"custom_caption"`
	CreatedAt     time.Time `json:"created_at"`

	// 关联关系
	Item MediaLibraryItem `gorm:"foreignKey:ItemID;references:ID"`
}

func (PostMedia) TableName() string {
	return "post_media"
}

// EffectiveAltText 取值优先级：本帖覆盖 > 媒体库条目 > 文件名兜底
func (pm *PostMedia) EffectiveAltText() string {
	if pm.CustomAltText != "" {
		return pm.CustomAltText
	}
	if pm.Item.AltText != "" {
		return pm.Item.AltText
	}
	return "Image: " + pm.Item.OriginalFilename
}

// EffectiveCaption 本帖覆盖优先，其次媒体库条目
func (pm *PostMedia) EffectiveCaption() string {
	if pm.CustomCaption != "" {
		return pm.CustomCaption
	}
	return pm.Item.Caption
}
