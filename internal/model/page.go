package model

import "time"

// Page 独立页面（关于、联系方式等），不进入信息流，无评论无可见性分级
type Page struct {
	ID          uint64    `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_page_slug" json:"slug"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	AuthorID    uint64    `gorm:"not null" json:"author_id"`
	IsPublished bool      `gorm:"type:tinyint(1);not null" json:"is_published"`
	ShowInNav   bool      `gorm:"type:tinyint(1);not null;default:0" json:"show_in_nav"`
	NavOrder    int       `gorm:"not null;default:0" json:"nav_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Page) TableName() string {
	return "pages"
}
