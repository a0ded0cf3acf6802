package model

import "time"

// Category 层级分类。ParentID 为空表示顶级分类，
// 层级关系不允许成环，写路径由 TaxonomyService 校验。
type Category struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Slug        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_slug"`
	Description string  `gorm:"type:varchar(500)"`
	ParentID    *uint64 `gorm:"index:idx_category_parent"`
	SortOrder   int     `gorm:"not null;default:0"`
	IsActive    bool    `gorm:"type:tinyint(1);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Parent   *Category   `gorm:"foreignKey:ParentID;references:ID"`
	Children []*Category `gorm:"foreignKey:ParentID;references:ID"`
}

func (Category) TableName() string {
	return "categories"
}

// IsRoot 是否为顶级分类
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
