package dto

// PostDTO 帖子详情
type PostDTO struct {
	ID            uint64  `json:"id"`
	AuthorID      uint64  `json:"author_id"`
	Title         string  `json:"title"`
	Slug          *string `json:"slug,omitempty"`
	Body          string  `json:"body"`
	Excerpt       string  `json:"excerpt"`
	Preview       string  `json:"preview"`
	Location      string  `json:"location,omitempty"`
	Visibility    string  `json:"visibility"`
	IsDraft       bool    `json:"is_draft"`
	IsPinned      bool    `json:"is_pinned"`
	IsArchived    bool    `json:"is_archived"`
	AllowComments bool    `json:"allow_comments"`
	AIEnhanced    bool    `json:"ai_enhanced"`
	ViewCount     uint64  `json:"view_count"`
	CommentCount  int64   `json:"comment_count"`
	ScheduledAt   string  `json:"scheduled_at,omitempty"`
	PublishedAt   string  `json:"published_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`

	Category *CategoryDTO     `json:"category,omitempty"`
	Tags     []*TagDTO        `json:"tags"`
	Media    []*AttachmentDTO `json:"media"`
}

// PostListItemDTO 帖子列表项
type PostListItemDTO struct {
	ID          uint64    `json:"id"`
	AuthorID    uint64    `json:"author_id"`
	Title       string    `json:"title"`
	Slug        *string   `json:"slug,omitempty"`
	Preview     string    `json:"preview"`
	Visibility  string    `json:"visibility"`
	IsDraft     bool      `json:"is_draft"`
	IsPinned    bool      `json:"is_pinned"`
	Category    string    `json:"category,omitempty"`
	Tags        []*TagDTO `json:"tags"`
	ViewCount   uint64    `json:"view_count"`
	PublishedAt string    `json:"published_at,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// PostBaseDTO 帖子 - 新增或修改
type PostBaseDTO struct {
	Title          string   `json:"title" validate:"max=300"`
	Slug           string   `json:"slug" validate:"max=100"`
	Body           string   `json:"body" binding:"required" validate:"min=1"`
	Excerpt        string   `json:"excerpt" validate:"max=1000"`
	Location       string   `json:"location" validate:"max=200"`
	Visibility     string   `json:"visibility"`
	CategoryID     *uint64  `json:"category_id"`
	TagNames       []string `json:"tag_names" validate:"max=20"`
	AllowedUserIDs []uint64 `json:"allowed_user_ids"`
	AllowComments  *bool    `json:"allow_comments"`
	IsDraft        *bool    `json:"is_draft"`
	ScheduledAt    string   `json:"scheduled_at"`
}

// PostListQueryDTO 帖子列表查询
type PostListQueryDTO struct {
	PageDTO
	AuthorID      uint64 `form:"author_id"`
	CategorySlug  string `form:"category"`
	TagSlug       string `form:"tag"`
	IncludeDrafts bool   `form:"include_drafts"`
}

// PostEnhanceDTO AI润色请求
type PostEnhanceDTO struct {
	Instructions string `json:"instructions" binding:"required" validate:"min=1,max=2000"`
}
