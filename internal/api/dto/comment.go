package dto

// CommentDTO 评论（含已加载的直接回复）
type CommentDTO struct {
	ID        uint64        `json:"id"`
	PostID    uint64        `json:"post_id"`
	AuthorID  uint64        `json:"author_id"`
	ParentID  *uint64       `json:"parent_id,omitempty"`
	Body      string        `json:"body"`
	IsEdited  bool          `json:"is_edited"`
	EditCount int           `json:"edit_count"`
	CreatedAt string        `json:"created_at"`
	Replies   []*CommentDTO `json:"replies,omitempty"`
}

// CommentCreateDTO 评论 - 新增。匿名评论需携带 author_name 与 author_email。
type CommentCreateDTO struct {
	PostID      uint64  `json:"post_id" binding:"required"`
	ParentID    *uint64 `json:"parent_id"`
	Body        string  `json:"body" binding:"required" validate:"min=1"`
	AuthorName  string  `json:"author_name" validate:"max=100"`
	AuthorEmail string  `json:"author_email" validate:"omitempty,email,max=254"`
	AuthorURL   string  `json:"author_url" validate:"omitempty,url,max=500"`
}

// CommentUpdateDTO 评论 - 修改正文
type CommentUpdateDTO struct {
	Body string `json:"body" binding:"required" validate:"min=1"`
}

// CommentHistoryDTO 评论历史快照
type CommentHistoryDTO struct {
	ID       uint64 `json:"id"`
	Body     string `json:"body"`
	EditedAt string `json:"edited_at"`
}

// PendingCommentDTO 待审评论
type PendingCommentDTO struct {
	ID          uint64  `json:"id"`
	PostID      uint64  `json:"post_id"`
	AuthorID    *uint64 `json:"author_id,omitempty"`
	AuthorName  string  `json:"author_name,omitempty"`
	AuthorEmail string  `json:"author_email,omitempty"`
	ParentID    *uint64 `json:"parent_id,omitempty"`
	Body        string  `json:"body"`
	IPAddress   string  `json:"ip_address,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// CommentSubmitResultDTO 评论提交结果。开启审核时评论先进待审队列。
type CommentSubmitResultDTO struct {
	// approved / pending
	Status    string      `json:"status"`
	Comment   *CommentDTO `json:"comment,omitempty"`
	PendingID uint64      `json:"pending_id,omitempty"`
}

// CommentRejectDTO 驳回待审评论
type CommentRejectDTO struct {
	Reason string `json:"reason" validate:"max=500"`
}
