package dto

// CategoryDTO 分类
type CategoryDTO struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	ParentID    *uint64        `json:"parent_id,omitempty"`
	SortOrder   int            `json:"sort_order"`
	IsActive    bool           `json:"is_active"`
	PostCount   int64          `json:"post_count"`
	Children    []*CategoryDTO `json:"children,omitempty"`
}

// CategoryBaseDTO 分类 - 新增或修改
type CategoryBaseDTO struct {
	Name        string  `json:"name" binding:"required" validate:"min=1,max=100"`
	Slug        string  `json:"slug" validate:"max=100"`
	Description string  `json:"description" validate:"max=500"`
	ParentID    *uint64 `json:"parent_id"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// TagDTO 标签
type TagDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	PostCount   int64   `json:"post_count"`
}

// TagBaseDTO 标签 - 新增
type TagBaseDTO struct {
	Name        string  `json:"name" binding:"required" validate:"min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}
