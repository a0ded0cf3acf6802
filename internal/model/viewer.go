package model

// Viewer 当前请求的访问者身份。匿名访问者 ID 为 0。
// 用户体系由宿主系统提供，这里只携带可见性判定需要的最小信息。
type Viewer struct {
	ID    uint64
	Roles []string
}

// Anonymous 匿名访问者
func Anonymous() Viewer {
	return Viewer{}
}

func (v Viewer) IsAuthenticated() bool {
	return v.ID != 0
}

func (v Viewer) HasRole(role string) bool {
	for _, r := range v.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (v Viewer) IsAdmin() bool {
	return v.HasRole("admin")
}
