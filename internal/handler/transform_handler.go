package handler

import (
	"net/http"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/service"

	"github.com/gin-gonic/gin"
)

// TransformFoto 按滤镜请求编译转换 URL 并保存到照片
func TransformFoto(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var body service.TransformBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	foto, err := service.TransformFoto(fotoID, body, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "照片转换失败")
		return
	}

	c.JSON(http.StatusOK, foto)
}

// ShowQR 为照片的转换 URL 生成二维码（base64 PNG）
func ShowQR(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	fotoID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	qr, err := service.ShowQR(fotoID, user)
	if err != nil {
		httpx.WriteServiceError(c, err, "二维码生成失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"qr_code": qr})
}
