package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

// ReactionCount 单一类型的表态计数
type ReactionCount struct {
	ReactionType string `json:"reaction_type"`
	Count        int64  `json:"count"`
}

type ReactionRepo interface {
	GetReaction(ctx context.Context, postID, userID uint64) (*model.Reaction, error)
	CreateReaction(ctx context.Context, reaction *model.Reaction) error
	UpdateReactionType(ctx context.Context, postID, userID uint64, reactionType string) error
	DeleteReaction(ctx context.Context, postID, userID uint64) error
	CountByPost(ctx context.Context, postID uint64) ([]ReactionCount, error)
}

type ReactionRepoImpl struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepo {
	return &ReactionRepoImpl{
		db: db,
	}
}

func (s ReactionRepoImpl) GetReaction(ctx context.Context, postID, userID uint64) (*model.Reaction, error) {
	var reaction model.Reaction
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (s ReactionRepoImpl) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	return s.db.WithContext(ctx).Create(reaction).Error
}

func (s ReactionRepoImpl) UpdateReactionType(ctx context.Context, postID, userID uint64, reactionType string) error {
	return s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Update("reaction_type", reactionType).Error
}

func (s ReactionRepoImpl) DeleteReaction(ctx context.Context, postID, userID uint64) error {
	return s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Reaction{}).Error
}

func (s ReactionRepoImpl) CountByPost(ctx context.Context, postID uint64) ([]ReactionCount, error) {
	var counts []ReactionCount
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Select("reaction_type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("reaction_type").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
