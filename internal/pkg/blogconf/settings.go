package blogconf

import (
	"errors"
	"fmt"
)

// ErrInvalidSetting 非法的配置项取值
var ErrInvalidSetting = errors.New("invalid blog setting")

// VisibilityChoice 可见性档位及展示名
type VisibilityChoice struct {
	Code  string `mapstructure:"code"`
	Label string `mapstructure:"label"`
}

// ReactionType 表态类型（代号、展示名、表情符号）
type ReactionType struct {
	Code  string `mapstructure:"code"`
	Label string `mapstructure:"label"`
	Emoji string `mapstructure:"emoji"`
}

// ThumbnailSize 缩略图尺寸
type ThumbnailSize struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Settings 内容模块运行时配置，未显式配置的键取默认值。
// 通过构造器注入到各 service，不做全局可变状态。
type Settings struct {
	VisibilityChoices []VisibilityChoice `mapstructure:"visibility_choices"`
	DefaultVisibility string             `mapstructure:"default_visibility"`

	AllowAnonymousComments bool `mapstructure:"allow_anonymous_comments"`
	ModerateComments       bool `mapstructure:"moderate_comments"`
	CommentMaxLength       int  `mapstructure:"comment_max_length"`

	MediaUploadPath    string          `mapstructure:"media_upload_path"`
	MediaMaxSizeMB     int64           `mapstructure:"media_max_size_mb"`
	AllowedImageTypes  []string        `mapstructure:"allowed_image_types"`
	AllowedVideoTypes  []string        `mapstructure:"allowed_video_types"`
	GenerateThumbnails bool            `mapstructure:"generate_thumbnails"`
	ThumbnailSizes     []ThumbnailSize `mapstructure:"thumbnail_sizes"`

	PostsPerPage        int  `mapstructure:"posts_per_page"`
	AllowScheduledPosts bool `mapstructure:"allow_scheduled_posts"`
	TrackAIEnhancements bool `mapstructure:"track_ai_enhancements"`

	ReactionTypes []ReactionType `mapstructure:"reaction_types"`

	AutoGenerateSlugs bool `mapstructure:"auto_generate_slugs"`
	SlugMaxLength     int  `mapstructure:"slug_max_length"`
}

// Default 返回全部默认值的配置
func Default() *Settings {
	return &Settings{
		VisibilityChoices: []VisibilityChoice{
			{Code: "PUBLIC", Label: "Public"},
			{Code: "PRIVATE", Label: "Private"},
			{Code: "UNLISTED", Label: "Unlisted"},
			{Code: "FRIENDS", Label: "Friends Only"},
			{Code: "CUSTOM", Label: "Custom"},
		},
		DefaultVisibility: "PUBLIC",

		AllowAnonymousComments: false,
		ModerateComments:       true,
		CommentMaxLength:       5000,

		MediaUploadPath: "blog/media/2006/01/",
		MediaMaxSizeMB:  50,
		AllowedImageTypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		},
		AllowedVideoTypes:  []string{"video/mp4", "video/webm"},
		GenerateThumbnails: true,
		ThumbnailSizes: []ThumbnailSize{
			{Width: 150, Height: 150},
			{Width: 300, Height: 300},
			{Width: 600, Height: 600},
		},

		PostsPerPage:        10,
		AllowScheduledPosts: true,
		TrackAIEnhancements: true,

		ReactionTypes: []ReactionType{
			{Code: "LIKE", Label: "Like", Emoji: "👍"},
			{Code: "LOVE", Label: "Love", Emoji: "❤️"},
			{Code: "HAHA", Label: "Haha", Emoji: "😂"},
			{Code: "WOW", Label: "Wow", Emoji: "😮"},
			{Code: "SAD", Label: "Sad", Emoji: "😢"},
			{Code: "ANGRY", Label: "Angry", Emoji: "😠"},
		},

		AutoGenerateSlugs: true,
		SlugMaxLength:     100,
	}
}

// Validate 校验配置的内部一致性
func (s *Settings) Validate() error {
	if len(s.VisibilityChoices) == 0 {
		return fmt.Errorf("%w: visibility_choices must not be empty", ErrInvalidSetting)
	}
	if !s.IsValidVisibility(s.DefaultVisibility) {
		return fmt.Errorf("%w: default_visibility %q is not among visibility_choices", ErrInvalidSetting, s.DefaultVisibility)
	}
	if s.CommentMaxLength <= 0 {
		return fmt.Errorf("%w: comment_max_length must be positive", ErrInvalidSetting)
	}
	if s.MediaMaxSizeMB <= 0 {
		return fmt.Errorf("%w: media_max_size_mb must be positive", ErrInvalidSetting)
	}
	if s.PostsPerPage <= 0 {
		return fmt.Errorf("%w: posts_per_page must be positive", ErrInvalidSetting)
	}
	if len(s.ReactionTypes) == 0 {
		return fmt.Errorf("%w: reaction_types must not be empty", ErrInvalidSetting)
	}
	if s.SlugMaxLength <= 0 {
		return fmt.Errorf("%w: slug_max_length must be positive", ErrInvalidSetting)
	}
	return nil
}

// IsValidVisibility 判断可见性代号是否在配置档位内
func (s *Settings) IsValidVisibility(code string) bool {
	for _, c := range s.VisibilityChoices {
		if c.Code == code {
			return true
		}
	}
	return false
}

// IsValidReaction 判断表态代号是否已配置
func (s *Settings) IsValidReaction(code string) bool {
	_, ok := s.ReactionByCode(code)
	return ok
}

// ReactionByCode 按代号查找表态类型
func (s *Settings) ReactionByCode(code string) (ReactionType, bool) {
	for _, r := range s.ReactionTypes {
		if r.Code == code {
			return r, true
		}
	}
	return ReactionType{}, false
}

// IsAllowedImageType 判断 MIME 是否为允许的图片类型
func (s *Settings) IsAllowedImageType(mime string) bool {
	return containsString(s.AllowedImageTypes, mime)
}

// IsAllowedVideoType 判断 MIME 是否为允许的视频类型
func (s *Settings) IsAllowedVideoType(mime string) bool {
	return containsString(s.AllowedVideoTypes, mime)
}

// MediaMaxSizeBytes 上传大小上限（字节）
func (s *Settings) MediaMaxSizeBytes() int64 {
	return s.MediaMaxSizeMB << 20
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
