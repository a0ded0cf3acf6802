package model

// PostAllowedUser CUSTOM 可见性下的白名单用户，用户 ID 来自宿主认证系统
type PostAllowedUser struct {
	PostID uint64 `gorm:"primaryKey" json:"postId"`
	UserID uint64 `gorm:"primaryKey;index:idx_allowed_user_id" json:"userId"`
}

func (PostAllowedUser) TableName() string {
	return "post_allowed_users"
}
