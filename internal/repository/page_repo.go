package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type PageRepo interface {
	CreatePage(ctx context.Context, page *model.Page) error
	GetPage(ctx context.Context, id uint64) (*model.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*model.Page, error)
	ListPages(ctx context.Context, onlyPublished bool) ([]*model.Page, error)
	ListNavPages(ctx context.Context) ([]*model.Page, error)
	UpdatePage(ctx context.Context, page *model.Page) error
	DeletePage(ctx context.Context, id uint64) error
	ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error)
}

type PageRepoImpl struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) PageRepo {
	return &PageRepoImpl{
		db: db,
	}
}

func (s PageRepoImpl) CreatePage(ctx context.Context, page *model.Page) error {
	return s.db.WithContext(ctx).Create(page).Error
}

func (s PageRepoImpl) GetPage(ctx context.Context, id uint64) (*model.Page, error) {
	var page model.Page
	err := s.db.WithContext(ctx).First(&page, id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s PageRepoImpl) GetPageBySlug(ctx context.Context, slug string) (*model.Page, error) {
	var page model.Page
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s PageRepoImpl) ListPages(ctx context.Context, onlyPublished bool) ([]*model.Page, error) {
	var pages []*model.Page
	query := s.db.WithContext(ctx).Order("title ASC")
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}
	err := query.Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// ListNavPages 导航栏页面，按 nav_order 排序
func (s PageRepoImpl) ListNavPages(ctx context.Context) ([]*model.Page, error) {
	var pages []*model.Page
	err := s.db.WithContext(ctx).
		Where("is_published = ? AND show_in_nav = ?", true, true).
		Order("nav_order ASC, title ASC").
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (s PageRepoImpl) UpdatePage(ctx context.Context, page *model.Page) error {
	return s.db.WithContext(ctx).Save(page).Error
}

func (s PageRepoImpl) DeletePage(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Page{}, id).Error
}

func (s PageRepoImpl) ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.Page{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
