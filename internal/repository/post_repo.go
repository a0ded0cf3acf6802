package repository

import (
	"Inkstone/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// PostQuery 帖子列表查询条件，零值字段不参与过滤
type PostQuery struct {
	ViewerID      uint64
	AuthorID      uint64
	CategoryIDs   []uint64
	TagSlug       string
	OnlyPublished bool
	IncludeDrafts bool
	Page          int
	PageSize      int
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, error)
	ListRelatedPosts(ctx context.Context, post *model.Post, limit int) ([]*model.Post, error)
	ListScheduledDue(ctx context.Context, now time.Time) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	UpdateColumns(ctx context.Context, id uint64, values map[string]interface{}) error
	PublishPost(ctx context.Context, id uint64, publishedAt time.Time) (bool, error)
	SoftDeletePost(ctx context.Context, id uint64) error
	IncrementViewCount(ctx context.Context, id uint64) error
	ReplaceTags(ctx context.Context, post *model.Post, tags []*model.Tag) error
	ReplaceAllowedUsers(ctx context.Context, postID uint64, userIDs []uint64) error
	ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Preload("AllowedUsers").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Media.Item").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Preload("AllowedUsers").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Media.Item").
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts 置顶优先，其余按发布时间倒序
func (s PostRepoImpl) ListPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{}).Where("is_deleted = ?", false)

	// 列表过滤与单帖可见性判定同口径：公开与不公开列出的帖子人人可见，
	// 本人帖子不受限制，CUSTOM 帖子对白名单内的登录用户可见。
	// FRIENDS 档位由宿主注入判定函数，SQL 层不做好友过滤，缺省不进列表。
	openTiers := []string{model.VisibilityPublic, model.VisibilityUnlisted}
	if q.ViewerID != 0 {
		query = query.Where(
			"posts.visibility IN ? OR posts.author_id = ? OR (posts.visibility = ? AND EXISTS (SELECT 1 FROM post_allowed_users au WHERE au.post_id = posts.id AND au.user_id = ?))",
			openTiers, q.ViewerID, model.VisibilityCustom, q.ViewerID)
	} else {
		query = query.Where("posts.visibility IN ?", openTiers)
	}

	if q.AuthorID != 0 {
		query = query.Where("author_id = ?", q.AuthorID)
	}
	if len(q.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", q.CategoryIDs)
	}
	if q.TagSlug != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", q.TagSlug)
	}
	if q.OnlyPublished {
		query = query.Where("is_draft = ? AND published_at IS NOT NULL", false).
			Where("scheduled_at IS NULL OR scheduled_at <= ?", time.Now())
	} else if !q.IncludeDrafts {
		query = query.Where("is_draft = ?", false)
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

	var posts []*model.Post
	err := query.
		Preload("Category").
		Preload("Tags").
		Order("posts.is_pinned DESC, posts.published_at DESC, posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListRelatedPosts 同分类或共享标签的已发布帖子，按发布时间倒序
func (s PostRepoImpl) ListRelatedPosts(ctx context.Context, post *model.Post, limit int) ([]*model.Post, error) {
	tagIDs := make([]uint64, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagIDs = append(tagIDs, t.ID)
	}

	query := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("posts.id != ?", post.ID).
		Where("posts.is_deleted = ? AND posts.is_draft = ? AND posts.published_at IS NOT NULL", false, false).
		Where("posts.visibility = ?", model.VisibilityPublic)

	switch {
	case post.CategoryID != nil && len(tagIDs) > 0:
		query = query.
			Joins("LEFT JOIN post_tags ON post_tags.post_id = posts.id").
			Where("posts.category_id = ? OR post_tags.tag_id IN ?", *post.CategoryID, tagIDs).
			Distinct()
	case post.CategoryID != nil:
		query = query.Where("posts.category_id = ?", *post.CategoryID)
	case len(tagIDs) > 0:
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id IN ?", tagIDs).
			Distinct()
	default:
		return nil, nil
	}

	var posts []*model.Post
	err := query.Order("posts.published_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) ListScheduledDue(ctx context.Context, now time.Time) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("is_deleted = ? AND is_draft = ?", false, false).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now).
		Where("published_at IS NULL").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

func (s PostRepoImpl) UpdateColumns(ctx context.Context, id uint64, values map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(values).Error
}

// PublishPost 首次发布生效，published_at 已存在时不覆盖。返回是否真正发生了发布。
func (s PostRepoImpl) PublishPost(ctx context.Context, id uint64, publishedAt time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND published_at IS NULL", id).
		Updates(map[string]interface{}{
			"is_draft":     false,
			"published_at": publishedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	// 已经发布过，只需确保脱离草稿态
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_draft", false).Error
	return false, err
}

func (s PostRepoImpl) SoftDeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": time.Now(),
	}).Error
}

// IncrementViewCount 数据库侧原子自增，避免读改写竞态
func (s PostRepoImpl) IncrementViewCount(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (s PostRepoImpl) ReplaceTags(ctx context.Context, post *model.Post, tags []*model.Tag) error {
	return s.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (s PostRepoImpl) ReplaceAllowedUsers(ctx context.Context, postID uint64, userIDs []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostAllowedUser{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		rows := make([]model.PostAllowedUser, 0, len(userIDs))
		for _, uid := range userIDs {
			rows = append(rows, model.PostAllowedUser{PostID: postID, UserID: uid})
		}
		return tx.Create(&rows).Error
	})
}

func (s PostRepoImpl) ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
