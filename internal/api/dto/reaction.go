package dto

// ReactionToggleDTO 表态 - 切换
type ReactionToggleDTO struct {
	ReactionType string `json:"reaction_type" binding:"required" validate:"min=1,max=20"`
}

// ReactionCountDTO 单一类型的表态计数
type ReactionCountDTO struct {
	ReactionType string `json:"reaction_type"`
	Emoji        string `json:"emoji"`
	Count        int64  `json:"count"`
}

// ReactionSummaryDTO 帖子的表态汇总
type ReactionSummaryDTO struct {
	PostID       uint64              `json:"post_id"`
	Counts       []*ReactionCountDTO `json:"counts"`
	Total        int64               `json:"total"`
	UserReaction string              `json:"user_reaction,omitempty"`
}

// ReactionToggleResultDTO 切换结果
type ReactionToggleResultDTO struct {
	// 本次操作后的状态: added / changed / removed
	Action   string              `json:"action"`
	Reaction string              `json:"reaction,omitempty"`
	Summary  *ReactionSummaryDTO `json:"summary"`
}
