package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerTagRoutes(api *gin.RouterGroup) {
	tags := api.Group("/tags", middleware.JWTAuth(), middleware.UserStatusCheck())
	{
		tags.POST("/new", handler.CreateTag)
		tags.GET("/my", handler.GetMyTags)
		tags.GET("/by_id/:id", handler.GetTagByID)

		// 管理员专属
		admin := tags.Group("", middleware.AdminCheck())
		{
			admin.GET("/all", handler.GetAllTags)
			admin.PUT("/:id", handler.UpdateTag)
			admin.DELETE("/:id", handler.DeleteTag)
		}
	}
}
