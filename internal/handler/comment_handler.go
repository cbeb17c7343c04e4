package handler

import (
	"net/http"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateComment 给指定照片发表评论
func CreateComment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "foto_id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required,max=450"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	comment, err := service.CreateComment(fotoID, req.Text, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "评论发表失败")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// EditComment 修改自己的评论
func EditComment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	commentID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required,max=450"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	comment, err := service.EditComment(commentID, req.Text, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "评论修改失败")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment 删除评论（作者、版主或管理员）
func DeleteComment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	commentID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	comment, err := service.DeleteComment(commentID, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "评论删除失败")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// GetCommentsByFoto 列出某张照片的全部评论
func GetCommentsByFoto(c *gin.Context) {
	fotoID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	comments, err := service.GetFotoComments(fotoID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取评论失败")
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetMyComments 列出自己发表的全部评论
func GetMyComments(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	comments, err := service.GetMyComments(user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取评论失败")
		return
	}

	c.JSON(http.StatusOK, comments)
}
