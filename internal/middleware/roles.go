package middleware

import (
	"net/http"
	"photo-shake-server/internal/consts"

	"github.com/gin-gonic/gin"
)

// RequireRoles 限定接口只允许指定角色访问，必须在 JWTAuth 之后使用
func RequireRoles(roles ...consts.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
			c.Abort()
			return
		}

		role, ok := roleVal.(consts.UserRole)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户角色类型"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": consts.MsgForbidden})
		c.Abort()
	}
}

// AdminCheck 管理员专用接口
func AdminCheck() gin.HandlerFunc {
	return RequireRoles(consts.RoleAdmin)
}

// ModerCheck 版主及以上角色可访问
func ModerCheck() gin.HandlerFunc {
	return RequireRoles(consts.RoleModer, consts.RoleAdmin)
}
