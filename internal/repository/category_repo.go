package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type CategoryRepo interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, id uint64) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	ListCategories(ctx context.Context, onlyActive bool) ([]*model.Category, error)
	ListChildren(ctx context.Context, parentID uint64) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint64) error
	ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error)
	CountPosts(ctx context.Context, categoryID uint64) (int64, error)
}

type CategoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepo {
	return &CategoryRepoImpl{
		db: db,
	}
}

func (s CategoryRepoImpl) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s CategoryRepoImpl) GetCategory(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Preload("Children").First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s CategoryRepoImpl) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Preload("Children").Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s CategoryRepoImpl) ListCategories(ctx context.Context, onlyActive bool) ([]*model.Category, error) {
	var categories []*model.Category
	query := s.db.WithContext(ctx).Order("sort_order ASC, name ASC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s CategoryRepoImpl) ListChildren(ctx context.Context, parentID uint64) ([]*model.Category, error) {
	var categories []*model.Category
	err := s.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("sort_order ASC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s CategoryRepoImpl) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

func (s CategoryRepoImpl) DeleteCategory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (s CategoryRepoImpl) ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (s CategoryRepoImpl) CountPosts(ctx context.Context, categoryID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Where("category_id = ? AND is_deleted = ?", categoryID, false).Count(&count).Error
	return count, err
}
