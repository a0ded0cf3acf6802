package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

// MediaQuery 媒体库列表查询条件
type MediaQuery struct {
	MediaType  string
	UploadedBy uint64
	Page       int
	PageSize   int
}

type MediaRepo interface {
	CreateItem(ctx context.Context, item *model.MediaLibraryItem) error
	GetItem(ctx context.Context, id uint64) (*model.MediaLibraryItem, error)
	GetItemByHash(ctx context.Context, contentHash string) (*model.MediaLibraryItem, error)
	ListItems(ctx context.Context, q MediaQuery) ([]*model.MediaLibraryItem, int64, error)
	UpdateItem(ctx context.Context, item *model.MediaLibraryItem) error
	DeleteItem(ctx context.Context, id uint64) error
	CountAttachments(ctx context.Context, itemID uint64) (int64, error)

	CreateAttachment(ctx context.Context, attachment *model.PostMedia) error
	GetAttachment(ctx context.Context, postID, itemID uint64) (*model.PostMedia, error)
	ListAttachments(ctx context.Context, postID uint64) ([]*model.PostMedia, error)
	UpdateAttachment(ctx context.Context, attachment *model.PostMedia) error
	DeleteAttachment(ctx context.Context, postID, itemID uint64) error
}

type MediaRepoImpl struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepo {
	return &MediaRepoImpl{
		db: db,
	}
}

func (s MediaRepoImpl) CreateItem(ctx context.Context, item *model.MediaLibraryItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s MediaRepoImpl) GetItem(ctx context.Context, id uint64) (*model.MediaLibraryItem, error) {
	var item model.MediaLibraryItem
	err := s.db.WithContext(ctx).Preload("Tags").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s MediaRepoImpl) GetItemByHash(ctx context.Context, contentHash string) (*model.MediaLibraryItem, error) {
	var item model.MediaLibraryItem
	err := s.db.WithContext(ctx).Where("content_hash = ?", contentHash).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s MediaRepoImpl) ListItems(ctx context.Context, q MediaQuery) ([]*model.MediaLibraryItem, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.MediaLibraryItem{})
	if q.MediaType != "" {
		query = query.Where("media_type = ?", q.MediaType)
	}
	if q.UploadedBy != 0 {
		query = query.Where("uploaded_by = ?", q.UploadedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize > 0 {
		query = query.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}

	var items []*model.MediaLibraryItem
	err := query.Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s MediaRepoImpl) UpdateItem(ctx context.Context, item *model.MediaLibraryItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s MediaRepoImpl) DeleteItem(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.PostMedia{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MediaLibraryItem{}, id).Error
	})
}

func (s MediaRepoImpl) CountAttachments(ctx context.Context, itemID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostMedia{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

func (s MediaRepoImpl) CreateAttachment(ctx context.Context, attachment *model.PostMedia) error {
	return s.db.WithContext(ctx).Create(attachment).Error
}

func (s MediaRepoImpl) GetAttachment(ctx context.Context, postID, itemID uint64) (*model.PostMedia, error) {
	var attachment model.PostMedia
	err := s.db.WithContext(ctx).Preload("Item").
		Where("post_id = ? AND item_id = ?", postID, itemID).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s MediaRepoImpl) ListAttachments(ctx context.Context, postID uint64) ([]*model.PostMedia, error) {
	var attachments []*model.PostMedia
	err := s.db.WithContext(ctx).Preload("Item").
		Where("post_id = ?", postID).
		Order("sort_order ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (s MediaRepoImpl) UpdateAttachment(ctx context.Context, attachment *model.PostMedia) error {
	return s.db.WithContext(ctx).Save(attachment).Error
}

func (s MediaRepoImpl) DeleteAttachment(ctx context.Context, postID, itemID uint64) error {
	return s.db.WithContext(ctx).
		Where("post_id = ? AND item_id = ?", postID, itemID).
		Delete(&model.PostMedia{}).Error
}
