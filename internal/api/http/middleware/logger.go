package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	infralog "github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
)

// AccessLog 访问日志中间件，按状态码分级写入结构化日志
func AccessLog(logger infralog.Logger) gin.HandlerFunc {
	var zl *zap.Logger
	if logger != nil {
		zl = logger.GetZapLogger()
	}
	if zl == nil {
		zl = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			zl.Error("HTTP request", fields...)
		case status >= 400:
			zl.Warn("HTTP request", fields...)
		default:
			zl.Info("HTTP request", fields...)
		}
	}
}
