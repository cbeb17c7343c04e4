package router

import (
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 注册全部 API 路由
func InitRouter(r *gin.Engine) {
	// 注册全局请求标识与安全标头中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/api")

	// 认证限流：登录、注册等敏感接口共用同一个限流实例
	authLimiter := middleware.RateLimitMiddleware(1, 5)
	// 上传限流：照片上传开销大，限制更严
	uploadLimiter := middleware.RateLimitMiddleware(0.5, 3)

	registerAuthRoutes(api, authLimiter)
	registerUserRoutes(api)
	registerFotoRoutes(api, uploadLimiter)
	registerCommentRoutes(api)
	registerTagRoutes(api)
	registerRatingRoutes(api)
	registerTransformRoutes(api)
}
