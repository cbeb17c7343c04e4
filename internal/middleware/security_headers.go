package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 为所有响应添加安全相关的 HTTP 头
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 防止 MIME 类型嗅探
		c.Header("X-Content-Type-Options", "nosniff")
		// 防止点击劫持
		c.Header("X-Frame-Options", "DENY")
		// 纯 API 服务，禁止加载任何外部资源
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		// 控制 Referrer 信息
		c.Header("Referrer-Policy", "no-referrer")

		c.Next()
	}
}
