package database

import (
	"Inkstone/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate 同步全部内容模块的表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Tag{},
		&model.Post{},
		&model.PostAllowedUser{},
		&model.Page{},
		&model.Comment{},
		&model.CommentHistory{},
		&model.PendingComment{},
		&model.Reaction{},
		&model.MediaLibraryItem{},
		&model.PostMedia{},
	)
}
