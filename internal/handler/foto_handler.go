package handler

import (
	"net/http"
	"strings"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/service"

	"github.com/gin-gonic/gin"
)

// splitTagTitles 解析表单中逗号分隔的标签串
func splitTagTitles(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// CreateFoto 上传新照片（multipart 表单：file + title + descr + tags）
func CreateFoto(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请选择文件"})
		return
	}

	title := c.PostForm("title")
	descr := c.PostForm("descr")
	tags := splitTagTitles(c.PostForm("tags"))

	foto, err := service.CreateFoto(title, descr, tags, file, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "照片上传失败")
		return
	}

	c.JSON(http.StatusCreated, foto)
}

// GetMyFotos 分页列出自己的照片
func GetMyFotos(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	skip, limit := queryPagination(c)
	fotos, err := service.GetMyFotos(skip, limit, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取照片列表失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetAllFotos 分页列出全部照片
func GetAllFotos(c *gin.Context) {
	skip, limit := queryPagination(c)
	fotos, err := service.GetAllFotos(skip, limit)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取照片列表失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetFotoByID 按 ID 查看自己的照片
func GetFotoByID(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	foto, err := service.GetFotoByID(fotoID, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取照片失败")
		return
	}

	c.JSON(http.StatusOK, foto)
}

// GetFotosByTitle 标题子串搜索
func GetFotosByTitle(c *gin.Context) {
	fotos, err := service.GetFotosByTitle(c.Param("title"))
	if err != nil {
		httpx.WriteServiceError(c, err, "搜索照片失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetFotosByUserID 按用户 ID 列出照片
func GetFotosByUserID(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	fotos, err := service.GetFotosByUserID(userID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取照片列表失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetFotosByUsername 按用户名（子串匹配第一个用户）列出照片
func GetFotosByUsername(c *gin.Context) {
	fotos, err := service.GetFotosByUsername(c.Param("name"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取照片列表失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetFotosWithTag 按标签标题列出照片
func GetFotosWithTag(c *gin.Context) {
	fotos, err := service.GetFotosWithTag(c.Param("tag"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取照片列表失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetFotosByKeyword 标题或描述关键字搜索
func GetFotosByKeyword(c *gin.Context) {
	fotos, err := service.GetFotoByKeyword(c.Param("keyword"))
	if err != nil {
		httpx.WriteServiceError(c, err, "搜索照片失败")
		return
	}

	c.JSON(http.StatusOK, fotos)
}

// GetFotoComments 列出某张照片的全部评论
func GetFotoComments(c *gin.Context) {
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

// UpdateFoto 更新照片元数据（标题、描述、标签）
func UpdateFoto(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var body service.FotoUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	foto, err := service.UpdateFoto(fotoID, body, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "照片更新失败")
		return
	}

	c.JSON(http.StatusOK, foto)
}

// DeleteFoto 删除照片及其评论、评分
func DeleteFoto(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	foto, err := service.RemoveFoto(fotoID, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "照片删除失败")
		return
	}

	c.JSON(http.StatusOK, foto)
}
