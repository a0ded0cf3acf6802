package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	CreateTag(ctx context.Context, tag *model.Tag) error
	GetTag(ctx context.Context, id uint64) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error)
	GetOrCreateTags(ctx context.Context, names []string, slugFor func(string) string) ([]*model.Tag, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
	DeleteTag(ctx context.Context, id uint64) error
	CountPosts(ctx context.Context, tagID uint64) (int64, error)
}

type TagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &TagRepoImpl{
		db: db,
	}
}

func (s TagRepoImpl) CreateTag(ctx context.Context, tag *model.Tag) error {
	return s.db.WithContext(ctx).Create(tag).Error
}

func (s TagRepoImpl) GetTag(ctx context.Context, id uint64) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.WithContext(ctx).First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s TagRepoImpl) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s TagRepoImpl) GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreateTags 批量取或建标签。并发下撞唯一索引时静默改为读取已有行。
func (s TagRepoImpl) GetOrCreateTags(ctx context.Context, names []string, slugFor func(string) string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0, len(names))
	for _, name := range names {
		tag := &model.Tag{Name: name, Slug: slugFor(name)}
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(tag).Error
		if err != nil {
			return nil, err
		}
		if tag.ID == 0 {
			if err = s.db.WithContext(ctx).Where("name = ?", name).First(tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s TagRepoImpl) ListTags(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s TagRepoImpl) DeleteTag(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, id).Error
	})
}

func (s TagRepoImpl) CountPosts(ctx context.Context, tagID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("post_tags").Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}
