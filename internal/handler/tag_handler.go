package handler

import (
	"net/http"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTag 创建标签（标题全局唯一，已存在则返回已有标签）
func CreateTag(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req struct {
		Title string `json:"title" binding:"required,max=25"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	tag, err := service.CreateTag(req.Title, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "标签创建失败")
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// GetMyTags 分页列出自己创建的标签
func GetMyTags(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	skip, limit := queryPagination(c)
	tags, err := service.GetMyTags(skip, limit, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取标签列表失败")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetAllTags 分页列出全部标签（管理员）
func GetAllTags(c *gin.Context) {
	skip, limit := queryPagination(c)
	tags, err := service.GetAllTags(skip, limit)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取标签列表失败")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTagByID 按 ID 查询标签
func GetTagByID(c *gin.Context) {
	tagID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	tag, err := service.GetTagByID(tagID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取标签失败")
		return
	}

	c.JSON(http.StatusOK, tag)
}

// UpdateTag 修改标签标题（管理员）
func UpdateTag(c *gin.Context) {
	tagID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title" binding:"required,max=25"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	tag, err := service.UpdateTag(tagID, req.Title)
	if err != nil {
		httpx.WriteServiceError(c, err, "标签更新失败")
		return
	}

	c.JSON(http.StatusOK, tag)
}

// DeleteTag 删除标签并解除与照片的关联（管理员）
func DeleteTag(c *gin.Context) {
	tagID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	tag, err := service.RemoveTag(tagID)
	if err != nil {
		httpx.WriteServiceError(c, err, "标签删除失败")
		return
	}

	c.JSON(http.StatusOK, tag)
}
