package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 帖子可见性级别
const (
	VisibilityPublic   = "PUBLIC"
	VisibilityPrivate  = "PRIVATE"
	VisibilityUnlisted = "UNLISTED"
	VisibilityFriends  = "FRIENDS"
	VisibilityCustom   = "CUSTOM"
)

type Post struct {
	ID       uint64  `gorm:"primaryKey"`
	AuthorID uint64  `gorm:"not null;index:idx_author_id" json:"author_id"`
	Title    string  `gorm:"type:varchar(255)" json:"title"`
	Slug     *string `gorm:"type:varchar(255);uniqueIndex:idx_post_slug" json:"slug"` // 无标题的帖子可以没有 slug
	Body     string  `gorm:"type:text;not null" json:"body"`
	Excerpt  string  `gorm:"type:text" json:"excerpt"`
	Location string  `gorm:"type:varchar(255)" json:"location"`

	Visibility    string     `gorm:"type:varchar(20);not null;default:'PUBLIC';index:idx_visibility" json:"visibility"`
	IsDraft       bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_draft"`
	IsPinned      bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_pinned"`
	IsArchived    bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_archived"`
	ArchivedAt    *time.Time `json:"archived_at"`
	IsDeleted     bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at"`
	// 不带列默认值：false 必须显式写入，缺省值由服务层补
	AllowComments bool `gorm:"type:tinyint(1);not null" json:"allow_comments"`

	// 定时发布：ScheduledAt 到点后由定时任务发布；PublishedAt 只在首次发布时写入
	ScheduledAt *time.Time `gorm:"index:idx_scheduled_at" json:"scheduled_at"`
	PublishedAt *time.Time `gorm:"index:idx_published_at" json:"published_at"`

	// 内容指纹：规范化正文的 SHA256，仅用于重复内容提示，不做唯一约束
	ContentHash string `gorm:"type:varchar(64);index:idx_post_content_hash" json:"content_hash"`

	// AI 增强痕迹
	AIEnhanced      bool   `gorm:"type:tinyint(1);not null;default:0" json:"ai_enhanced"`
	AIInstructions  string `gorm:"type:text" json:"ai_instructions"`
	OriginalContent string `gorm:"type:text" json:"original_content"`

	CategoryID *uint64 `json:"category_id"`

	ViewCount uint64 `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	Category     *Category         `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Tags         []Tag             `gorm:"many2many:post_tags"`
	AllowedUsers []PostAllowedUser `gorm:"foreignKey:PostID;references:ID"`
	Media        []PostMedia       `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

// BeforeSave 每次保存都按当前正文重算内容指纹；首次脱离草稿时记录发布时间。
// 定时帖到点前不落 published_at，由定时任务补发。
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.Body != "" {
		p.ContentHash = HashContent(p.Body)
	}
	if !p.IsDraft && p.PublishedAt == nil {
		now := time.Now()
		if p.ScheduledAt == nil || !p.ScheduledAt.After(now) {
			p.PublishedAt = &now
		}
	}
	return nil
}

// HashContent 规范化（小写、去首尾空白）后求 SHA256
func HashContent(body string) string {
	normalized := strings.ToLower(strings.TrimSpace(body))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// IsPublished 非草稿且未删除即视为已发布
func (p *Post) IsPublished() bool {
	return !p.IsDraft && !p.IsDeleted
}

// IsScheduled 是否还在等待定时发布
func (p *Post) IsScheduled(now time.Time) bool {
	if p.IsDraft || p.ScheduledAt == nil || p.PublishedAt != nil {
		return false
	}
	return p.ScheduledAt.After(now)
}

const previewLength = 280

// Preview 信息流展示用的摘要
func (p *Post) Preview() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	if len(p.Body) > previewLength {
		return p.Body[:previewLength] + "..."
	}
	return p.Body
}

// CanView 可见性判定，所有读路径（列表过滤与详情）必须走同一份逻辑。
// FRIENDS 级别默认拒绝，好友关系属于宿主系统，由 PostService 的
// FriendChecker 覆盖。
func (p *Post) CanView(v Viewer) bool {
	// 草稿和未到点的定时帖仅作者可见
	if p.IsDraft || p.IsScheduled(time.Now()) {
		return v.IsAuthenticated() && v.ID == p.AuthorID
	}

	if p.IsDeleted {
		return false
	}

	switch p.Visibility {
	case VisibilityPublic, VisibilityUnlisted:
		// UNLISTED 依赖链接的隐蔽性而非访问控制
		return true
	}

	if !v.IsAuthenticated() {
		return false
	}

	if v.ID == p.AuthorID {
		return true
	}

	switch p.Visibility {
	case VisibilityPrivate:
		return false
	case VisibilityCustom:
		for _, au := range p.AllowedUsers {
			if au.UserID == v.ID {
				return true
			}
		}
		return false
	case VisibilityFriends:
		return false
	}

	return false
}
