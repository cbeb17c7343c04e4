package service

import (
	"context"
	"errors"
	"io"
	"log"
	"photo-shake-server/internal/config"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// 外部图床（Cloudinary）封装。
// 上传、删除、构建 URL 三个操作通过包级函数变量暴露，
// 测试中可替换为本地桩，避免依赖真实凭据与网络。

var (
	cldOnce sync.Once
	cld     *cloudinary.Cloudinary
	cldErr  error
)

func getCloudinary() (*cloudinary.Cloudinary, error) {
	cldOnce.Do(func() {
		cfg := config.Get().Cloudinary
		if cfg.CloudName == "" {
			cldErr = errors.New("cloudinary 未配置")
			return
		}
		cld, cldErr = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
		if cldErr != nil {
			log.Printf("❌ Cloudinary 初始化失败: %v", cldErr)
		}
	})
	return cld, cldErr
}

// CDNUpload 上传图片到图床，public_id 为稳定标识
var CDNUpload = func(ctx context.Context, file io.Reader, publicID string) error {
	c, err := getCloudinary()
	if err != nil {
		return err
	}
	_, err = c.Upload.Upload(ctx, file, uploader.UploadParams{PublicID: publicID})
	return err
}

// CDNDestroy 从图床删除图片
var CDNDestroy = func(ctx context.Context, publicID string) error {
	c, err := getCloudinary()
	if err != nil {
		return err
	}
	_, err = c.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// CDNBuildURL 构建携带转换链的图片访问 URL。
// transformation 为已序列化的转换串（如 "c_fill,h_250,w_250"），可为空。
var CDNBuildURL = func(publicID string, transformation string) (string, error) {
	c, err := getCloudinary()
	if err != nil {
		return "", err
	}
	img, err := c.Image(publicID)
	if err != nil {
		return "", err
	}
	img.Transformation = transformation
	return img.String()
}
