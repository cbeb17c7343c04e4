package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerRatingRoutes(api *gin.RouterGroup) {
	ratings := api.Group("/ratings", middleware.JWTAuth(), middleware.UserStatusCheck())
	{
		ratings.POST("/fotos/:foto_id/:rate", handler.CreateRate)
		ratings.PUT("/edit/:id/:rate", handler.EditRate)
		ratings.GET("/all_my", handler.GetMyRatings)

		// 版主及以上
		moder := ratings.Group("", middleware.ModerCheck())
		{
			moder.DELETE("/delete/:id", handler.DeleteRate)
			moder.GET("/all", handler.GetAllRatings)
		}

		// 管理员专属
		admin := ratings.Group("", middleware.AdminCheck())
		{
			admin.GET("/user_foto/:user_id/:foto_id", handler.GetUserRateFoto)
		}
	}
}
