package handler

import (
	"net/http"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/service"

	"github.com/gin-gonic/gin"
)

// paramRate 解析评分路径参数，范围 1-5
func paramRate(c *gin.Context, name string) (int, bool) {
	val, ok := paramUint(c, name)
	if !ok {
		return 0, false
	}
	if val < 1 || val > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "评分必须在 1 到 5 之间"})
		return 0, false
	}
	return int(val), true
}

// CreateRate 给照片评分（不能评自己的照片，不能重复评分）
func CreateRate(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "foto_id")
	if !ok {
		return
	}

	rate, ok := paramRate(c, "rate")
	if !ok {
		return
	}

	rating, err := service.CreateRate(fotoID, rate, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "评分失败")
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// EditRate 修改评分（评分作者、版主或管理员）
func EditRate(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	rateID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	newRate, ok := paramRate(c, "rate")
	if !ok {
		return
	}

	rating, err := service.EditRate(rateID, newRate, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "评分修改失败")
		return
	}

	c.JSON(http.StatusOK, rating)
}

// DeleteRate 删除评分（版主或管理员）
func DeleteRate(c *gin.Context) {
	rateID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	rating, err := service.DeleteRate(rateID)
	if err != nil {
		httpx.WriteServiceError(c, err, "评分删除失败")
		return
	}

	c.JSON(http.StatusOK, rating)
}

// GetAllRatings 列出全部评分（版主或管理员）
func GetAllRatings(c *gin.Context) {
	ratings, err := service.ShowRatings()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取评分列表失败")
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// GetMyRatings 列出自己打出的全部评分
func GetMyRatings(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	ratings, err := service.ShowMyRatings(user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取评分列表失败")
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// GetUserRateFoto 查询某用户对某照片的评分（管理员）
func GetUserRateFoto(c *gin.Context) {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		return
	}

	fotoID, ok := paramUint(c, "foto_id")
	if !ok {
		return
	}

	rating, err := service.UserRateFoto(userID, fotoID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取评分失败")
		return
	}

	c.JSON(http.StatusOK, rating)
}
