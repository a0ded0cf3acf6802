package dto

// SettingChoiceDTO 带展示名的选项
type SettingChoiceDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ReactionTypeDTO 可用的表态类型
type ReactionTypeDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// SettingsDTO 对外暴露的有效配置
type SettingsDTO struct {
	VisibilityChoices      []*SettingChoiceDTO `json:"visibility_choices"`
	DefaultVisibility      string              `json:"default_visibility"`
	AllowAnonymousComments bool                `json:"allow_anonymous_comments"`
	ModerateComments       bool                `json:"moderate_comments"`
	CommentMaxLength       int                 `json:"comment_max_length"`
	MediaMaxSizeMB         int64               `json:"media_max_size_mb"`
	AllowedImageTypes      []string            `json:"allowed_image_types"`
	AllowedVideoTypes      []string            `json:"allowed_video_types"`
	PostsPerPage           int                 `json:"posts_per_page"`
	AllowScheduledPosts    bool                `json:"allow_scheduled_posts"`
	ReactionTypes          []*ReactionTypeDTO  `json:"reaction_types"`
}
