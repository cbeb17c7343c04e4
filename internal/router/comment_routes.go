package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerCommentRoutes(api *gin.RouterGroup) {
	comments := api.Group("/comments", middleware.JWTAuth(), middleware.UserStatusCheck())
	{
		comments.POST("/new/:foto_id", handler.CreateComment)
		comments.PUT("/edit/:id", handler.EditComment)
		comments.DELETE("/delete/:id", handler.DeleteComment)
		comments.GET("/by_foto/:id", handler.GetCommentsByFoto)
		comments.GET("/my", handler.GetMyComments)
	}
}
