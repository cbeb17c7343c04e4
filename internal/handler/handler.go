package handler

import (
	"net/http"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/model"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUser 从上下文中还原当前请求用户，失败时写入 401 并返回 nil
func currentUser(c *gin.Context) *model.User {
	idVal, exists := c.Get("id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return nil
	}

	uid, ok := idVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return nil
	}

	user := &model.User{ID: uid}
	if nameVal, ok := c.Get("username"); ok {
		if name, ok := nameVal.(string); ok {
			user.Username = name
		}
	}
	if roleVal, ok := c.Get("role"); ok {
		if role, ok := roleVal.(consts.UserRole); ok {
			user.Role = role
		}
	}

	return user
}

// paramUint 解析路径参数为 uint，失败时写入 400 并返回 false
func paramUint(c *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return 0, false
	}
	return uint(val), true
}

// queryPagination 读取 skip/limit 分页参数，带默认值
func queryPagination(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 100
	}
	return skip, limit
}
