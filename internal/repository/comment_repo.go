package repository

import (
	"Inkstone/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id uint64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*model.Comment, error)
	UpdateCommentBody(ctx context.Context, comment *model.Comment, snapshot *model.CommentHistory) error
	SetApproved(ctx context.Context, id uint64, approved bool) error
	SoftDeleteComment(ctx context.Context, id uint64) error
	CountApproved(ctx context.Context, postID uint64) (int64, error)
	ListHistory(ctx context.Context, commentID uint64) ([]*model.CommentHistory, error)

	CreatePending(ctx context.Context, pending *model.PendingComment) error
	GetPending(ctx context.Context, id uint64) (*model.PendingComment, error)
	ListPending(ctx context.Context, postID uint64) ([]*model.PendingComment, error)
	ApprovePending(ctx context.Context, pending *model.PendingComment, comment *model.Comment) error
	RejectPending(ctx context.Context, pending *model.PendingComment) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{
		db: db,
	}
}

func (s CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s CommentRepoImpl) GetComment(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s CommentRepoImpl) ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*model.Comment, error) {
	var comments []*model.Comment
	query := s.db.WithContext(ctx).Where("post_id = ? AND is_deleted = ?", postID, false)
	if onlyApproved {
		query = query.Where("is_approved = ?", true)
	}
	err := query.Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s CommentRepoImpl) SetApproved(ctx context.Context, id uint64, approved bool) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		Update("is_approved", approved).Error
}

// UpdateCommentBody 修改正文并落一条历史快照，同一事务内完成
func (s CommentRepoImpl) UpdateCommentBody(ctx context.Context, comment *model.Comment, snapshot *model.CommentHistory) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).Where("id = ?", comment.ID).Updates(map[string]interface{}{
			"body":       comment.Body,
			"is_edited":  true,
			"edit_count": gorm.Expr("edit_count + ?", 1),
		}).Error
	})
}

func (s CommentRepoImpl) SoftDeleteComment(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": time.Now(),
	}).Error
}

func (s CommentRepoImpl) CountApproved(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND is_approved = ? AND is_deleted = ?", postID, true, false).
		Count(&count).Error
	return count, err
}

func (s CommentRepoImpl) ListHistory(ctx context.Context, commentID uint64) ([]*model.CommentHistory, error) {
	var history []*model.CommentHistory
	err := s.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("edited_at DESC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s CommentRepoImpl) CreatePending(ctx context.Context, pending *model.PendingComment) error {
	return s.db.WithContext(ctx).Create(pending).Error
}

func (s CommentRepoImpl) GetPending(ctx context.Context, id uint64) (*model.PendingComment, error) {
	var pending model.PendingComment
	err := s.db.WithContext(ctx).First(&pending, id).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// ListPending 待审队列，postID 为 0 时取全站
func (s CommentRepoImpl) ListPending(ctx context.Context, postID uint64) ([]*model.PendingComment, error) {
	var pendings []*model.PendingComment
	query := s.db.WithContext(ctx).Model(&model.PendingComment{})
	if postID != 0 {
		query = query.Where("post_id = ?", postID)
	}
	err := query.Order("created_at ASC").Find(&pendings).Error
	if err != nil {
		return nil, err
	}
	return pendings, nil
}

// ApprovePending 审核通过：记录审核信息、生成正式评论并删除待审记录，
// 同一事务内完成。记录已被删除时返回 not-found，两个管理员同时操作只有一个成功。
func (s CommentRepoImpl) ApprovePending(ctx context.Context, pending *model.PendingComment, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PendingComment{}).
			Where("id = ?", pending.ID).
			Updates(map[string]interface{}{
				"reviewed_at": pending.ReviewedAt,
				"reviewed_by": pending.ReviewedBy,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Delete(&model.PendingComment{}, pending.ID).Error; err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
}

// RejectPending 驳回：记录审核信息与驳回原因后删除待审记录，不产生正式评论
func (s CommentRepoImpl) RejectPending(ctx context.Context, pending *model.PendingComment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PendingComment{}).
			Where("id = ?", pending.ID).
			Updates(map[string]interface{}{
				"reviewed_at":      pending.ReviewedAt,
				"reviewed_by":      pending.ReviewedBy,
				"rejection_reason": pending.RejectionReason,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&model.PendingComment{}, pending.ID).Error
	})
}
