package handler

import (
	"net/http"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/middleware"
	"photo-shake-server/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMe 获取当前登录用户信息
func GetMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	full, err := service.GetUserByID(user.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}

	c.JSON(http.StatusOK, full)
}

// EditMe 修改当前用户资料（用户名）
func EditMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	full, err := service.GetUserByID(user.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}

	updated, err := service.EditProfile(full, req.Username)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新失败")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetAllUsers 分页列出全部用户（管理员）
func GetAllUsers(c *gin.Context) {
	skip, limit := queryPagination(c)

	users, err := service.GetUsers(skip, limit)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户列表失败")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUsersWithUsername 按用户名子串搜索用户
func GetUsersWithUsername(c *gin.Context) {
	username := c.Param("username")

	users, err := service.GetUsersWithUsername(username)
	if err != nil {
		httpx.WriteServiceError(c, err, "搜索用户失败")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserProfile 按用户名精确查询用户主页
func GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := service.GetUserProfile(username)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户主页失败")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// BanUser 封禁用户（管理员）
func BanUser(c *gin.Context) {
	email := c.Param("email")

	user, err := service.GetUserByEmail(email)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户失败")
		return
	}

	if err := service.BanUser(email); err != nil {
		httpx.WriteServiceError(c, err, "封禁失败")
		return
	}

	// 状态变更后立即失效缓存，封禁即时生效
	middleware.ClearUserStatusCache(user.ID)

	c.JSON(http.StatusOK, gin.H{"message": consts.MsgUserBanned})
}

// UnbanUser 解封用户（管理员）
func UnbanUser(c *gin.Context) {
	email := c.Param("email")

	user, err := service.GetUserByEmail(email)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户失败")
		return
	}

	if err := service.UnbanUser(email); err != nil {
		httpx.WriteServiceError(c, err, "解封失败")
		return
	}

	middleware.ClearUserStatusCache(user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "账号已解封"})
}

// MakeRole 变更用户角色（管理员）
func MakeRole(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if !consts.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的角色"})
		return
	}
	role := consts.UserRole(req.Role)

	if err := service.ChangeRole(email, role); err != nil {
		httpx.WriteServiceError(c, err, "角色变更失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "角色已变更为 " + consts.RoleDisplayName(role)})
}
