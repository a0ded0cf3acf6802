package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":        "POST, GET, OPTIONS, PUT, DELETE, PATCH",
	"Access-Control-Allow-Headers":        "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Trace-ID",
	"Access-Control-Allow-Expose-Headers": "Content-Length, Cache-Control, Content-Language, Content-Type, X-Trace-ID",
	"Access-Control-Allow-Credentials":    "true",
}

// CORSMiddleware 处理跨域请求
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.Request.Header.Get("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			for k, v := range corsHeaders {
				c.Header(k, v)
			}
		}

		// 浏览器 OPTIONS 预检请求直接放行
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
