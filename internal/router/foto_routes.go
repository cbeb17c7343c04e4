package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerFotoRoutes(api *gin.RouterGroup, uploadLimiter gin.HandlerFunc) {
	fotos := api.Group("/fotos", middleware.JWTAuth(), middleware.UserStatusCheck())
	{
		fotos.POST("/new", uploadLimiter, handler.CreateFoto)
		fotos.GET("/my_fotos", handler.GetMyFotos)
		fotos.GET("/by_id/:id", handler.GetFotoByID)
		fotos.GET("/by_title/:title", handler.GetFotosByTitle)
		fotos.GET("/by_user_id/:id", handler.GetFotosByUserID)
		fotos.GET("/by_username/:name", handler.GetFotosByUsername)
		fotos.GET("/with_tag/:tag", handler.GetFotosWithTag)
		fotos.GET("/by_keyword/:keyword", handler.GetFotosByKeyword)
		fotos.GET("/comments/all/:id", handler.GetFotoComments)
		fotos.PUT("/:id", handler.UpdateFoto)
		fotos.DELETE("/:id", handler.DeleteFoto)

		// 管理员专属
		admin := fotos.Group("", middleware.AdminCheck())
		{
			admin.GET("/all", handler.GetAllFotos)
		}
	}
}
