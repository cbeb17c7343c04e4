package router

import (
	"photo-shake-server/internal/handler"
	"photo-shake-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", middleware.JWTAuth(), middleware.UserStatusCheck())
	{
		users.GET("/me", handler.GetMe)
		users.PUT("/edit_me", handler.EditMe)
		users.GET("/users_with_username/:username", handler.GetUsersWithUsername)
		users.GET("/user_profile_with_username/:username", handler.GetUserProfile)

		// 管理员专属
		admin := users.Group("", middleware.AdminCheck())
		{
			admin.GET("/all", handler.GetAllUsers)
			admin.PATCH("/ban/:email", handler.BanUser)
			admin.PATCH("/unban/:email", handler.UnbanUser)
			admin.PATCH("/make_role/:email", handler.MakeRole)
		}
	}
}
