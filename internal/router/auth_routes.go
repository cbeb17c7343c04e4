package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authLimiter, handler.Signup)
		auth.POST("/login", authLimiter, handler.Login)
		auth.POST("/logout", middleware.JWTAuth(), handler.Logout)
		auth.GET("/refresh_token", authLimiter, handler.RefreshToken)
		auth.GET("/confirmed_email/:token", authLimiter, handler.ConfirmedEmail)
	}
}
