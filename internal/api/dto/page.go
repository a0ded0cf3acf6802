package dto

// PageInfoDTO 独立页面
type PageInfoDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Body        string `json:"body"`
	AuthorID    uint64 `json:"author_id"`
	IsPublished bool   `json:"is_published"`
	ShowInNav   bool   `json:"show_in_nav"`
	NavOrder    int    `json:"nav_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// PageBaseDTO 独立页面 - 新增或修改
type PageBaseDTO struct {
	Title       string `json:"title" binding:"required" validate:"min=1,max=200"`
	Slug        string `json:"slug" validate:"max=100"`
	Body        string `json:"body" binding:"required" validate:"min=1"`
	IsPublished *bool  `json:"is_published"`
	ShowInNav   *bool  `json:"show_in_nav"`
	NavOrder    int    `json:"nav_order"`
}
