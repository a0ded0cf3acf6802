package middleware

import (
	"Inkstone/internal/model"

	"github.com/gin-gonic/gin"
)

// CurrentViewer 从请求上下文取出访问者身份，未登录返回匿名访问者
func CurrentViewer(c *gin.Context) model.Viewer {
	return model.Viewer{
		ID:    c.GetUint64("user_id"),
		Roles: c.GetStringSlice("roles"),
	}
}
