package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerTransformRoutes(api *gin.RouterGroup) {
	transformations := api.Group("/transformations", middleware.JWTAuth(), middleware.UserStatusCheck())
	{
		transformations.PATCH("/:id", handler.TransformFoto)
		transformations.POST("/qr/:id", handler.ShowQR)
	}
}
