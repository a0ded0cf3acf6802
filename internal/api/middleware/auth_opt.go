package middleware

import (
	"Inkstone/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID 与角色，
// Token 缺失或非法则按匿名访问者放行，由服务层按可见性过滤
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "user_id", claims.UserID))

		c.Next()
	}
}
