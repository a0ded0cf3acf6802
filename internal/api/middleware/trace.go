package middleware

import (
	"Inkstone/internal/pkg/logger"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware 透传或生成请求链路标识，写入 gin 与 request 两层 Context
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), logger.TraceIDKey, traceID))

		c.Header(traceHeader, traceID)
		c.Next()
	}
}
