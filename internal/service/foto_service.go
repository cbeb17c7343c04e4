package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/config"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"

	"gorm.io/gorm"
)

// FotoUpdateBody 照片元数据更新请求
type FotoUpdateBody struct {
	Title string   `json:"title" binding:"max=45"`
	Descr string   `json:"descr" binding:"max=450"`
	Tags  []string `json:"tags"`
}

// nextPublicID 生成照片在图床中的公开标识：按属主递增的序列
func nextPublicID(userID uint) (string, error) {
	folder := config.Get().Cloudinary.Folder
	if folder == "" {
		folder = "PhotoShake"
	}

	var count int64
	if err := db.DB.Model(&model.Foto{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return "", err
	}

	// 删除会在序列中留下空洞，向后探测直到找到未占用的标识
	for seq := count + 1; ; seq++ {
		candidate := fmt.Sprintf("%s/%d/%d", folder, userID, seq)
		var exists int64
		if err := db.DB.Model(&model.Foto{}).Where("public_id = ?", candidate).Count(&exists).Error; err != nil {
			return "", err
		}
		if exists == 0 {
			return candidate, nil
		}
	}
}

// CreateFoto 上传照片到图床并落库。
// 初始的 image_url 与 transform_url 均为 250x250 填充裁剪的预览 URL。
func CreateFoto(title, descr string, tagTitles []string, file *multipart.FileHeader, user *model.User) (*model.Foto, error) {
	if len(tagTitles) > consts.MaxTagsPerFoto {
		return nil, common.NewValidationError(consts.MsgTooManyTags)
	}

	publicID, err := nextPublicID(user.ID)
	if err != nil {
		log.Printf("Next public id error: %v\n", err)
		return nil, common.NewInternalError("生成照片标识失败")
	}

	src, err := file.Open()
	if err != nil {
		return nil, common.NewValidationError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := CDNUpload(ctx, src, publicID); err != nil {
		log.Printf("CDN upload error: %v\n", err)
		return nil, common.NewInternalError("图床上传失败")
	}

	url, err := CDNBuildURL(publicID, "c_fill,h_250,w_250")
	if err != nil {
		log.Printf("CDN build url error: %v\n", err)
		return nil, common.NewInternalError("图床 URL 构建失败")
	}

	tags, err := ResolveTags(tagTitles, user)
	if err != nil {
		return nil, err
	}

	foto := model.Foto{
		ImageURL:     url,
		TransformURL: url,
		Title:        title,
		Descr:        descr,
		Tags:         tags,
		Done:         true,
		UserID:       user.ID,
		PublicID:     publicID,
	}
	if err := db.DB.Create(&foto).Error; err != nil {
		log.Printf("Create foto error: %v\n", err)
		return nil, common.NewInternalError("照片记录创建失败")
	}
	return &foto, nil
}

// attachAvgRatings 为一批照片填充实时平均评分，整批一次分组查询
func attachAvgRatings(fotos []model.Foto) error {
	if len(fotos) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(fotos))
	for _, f := range fotos {
		ids = append(ids, f.ID)
	}

	var rows []struct {
		FotoID uint
		Avg    float64
	}
	err := db.DB.Model(&model.Rating{}).
		Select("foto_id, AVG(rate) AS avg").
		Where("foto_id IN ?", ids).
		Group("foto_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	avgByFoto := make(map[uint]float64, len(rows))
	for _, row := range rows {
		avgByFoto[row.FotoID] = row.Avg
	}
	for i := range fotos {
		fotos[i].AvgRating = avgByFoto[fotos[i].ID]
	}
	return nil
}

// GetMyFotos 分页列出当前用户的照片
func GetMyFotos(skip, limit int, user *model.User) ([]model.Foto, error) {
	var fotos []model.Foto
	err := db.DB.Preload("Tags").Where("user_id = ?", user.ID).
		Offset(skip).Limit(limit).Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, attachAvgRatings(fotos)
}

// GetAllFotos 分页列出全部照片
func GetAllFotos(skip, limit int) ([]model.Foto, error) {
	var fotos []model.Foto
	err := db.DB.Preload("Tags").Offset(skip).Limit(limit).Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, attachAvgRatings(fotos)
}

// GetFotoByID 按 ID 查询当前用户的照片。
// 非本人所有与不存在同样返回不存在。
func GetFotoByID(fotoID uint, user *model.User) (*model.Foto, error) {
	var foto model.Foto
	err := db.DB.Preload("Tags").Where("user_id = ? AND id = ?", user.ID, fotoID).First(&foto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}
	if foto.AvgRating, err = AverageRating(foto.ID); err != nil {
		return nil, err
	}
	return &foto, nil
}

// GetFotosByTitle 标题子串搜索，不区分大小写
func GetFotosByTitle(title string) ([]model.Foto, error) {
	var fotos []model.Foto
	err := db.DB.Preload("Tags").
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%").
		Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, attachAvgRatings(fotos)
}

// GetFotosByUserID 列出指定用户的全部照片
func GetFotosByUserID(userID uint) ([]model.Foto, error) {
	var fotos []model.Foto
	err := db.DB.Preload("Tags").Where("user_id = ?", userID).Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, attachAvgRatings(fotos)
}

// GetFotosByUsername 按用户名子串匹配到的第一个用户，返回其全部照片
func GetFotosByUsername(username string) ([]model.Foto, error) {
	var user model.User
	err := db.DB.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(username)+"%").First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}
	return GetFotosByUserID(user.ID)
}

// GetFotosWithTag 列出携带指定标签的照片
func GetFotosWithTag(tagTitle string) ([]model.Foto, error) {
	var fotos []model.Foto
	err := db.DB.Preload("Tags").
		Joins("JOIN foto_tags ON foto_tags.foto_id = fotos.id").
		Joins("JOIN tags ON tags.id = foto_tags.tag_id").
		Where("tags.title = ?", tagTitle).
		Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, attachAvgRatings(fotos)
}

// GetFotoByKeyword 关键字搜索，匹配标题或描述
func GetFotoByKeyword(keyword string) ([]model.Foto, error) {
	kw := "%" + strings.ToLower(keyword) + "%"
	var fotos []model.Foto
	err := db.DB.Preload("Tags").
		Where("LOWER(title) LIKE ? OR LOWER(descr) LIKE ?", kw, kw).
		Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, attachAvgRatings(fotos)
}

// GetFotoComments 列出照片的全部评论
func GetFotoComments(fotoID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := db.DB.Where("foto_id = ?", fotoID).Find(&comments).Error
	return comments, err
}

// UpdateFoto 更新照片元数据并重新解析标签。属主或管理员可操作。
func UpdateFoto(fotoID uint, body FotoUpdateBody, user *model.User) (*model.Foto, error) {
	var foto model.Foto
	err := db.DB.First(&foto, fotoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}

	if !CanModify(user, foto.UserID) {
		return nil, common.NewForbiddenError(consts.MsgForbidden)
	}

	if len(body.Tags) > consts.MaxTagsPerFoto {
		return nil, common.NewValidationError(consts.MsgTooManyTags)
	}

	tags, err := ResolveTags(body.Tags, user)
	if err != nil {
		return nil, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&foto).Updates(map[string]interface{}{
			"title": body.Title,
			"descr": body.Descr,
			"done":  true,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&foto).Association("Tags").Replace(tags)
	})
	if err != nil {
		log.Printf("Update foto error: %v\n", err)
		return nil, common.NewInternalError("照片更新失败")
	}
	foto.Title = body.Title
	foto.Descr = body.Descr
	foto.Done = true
	foto.Tags = tags
	if foto.AvgRating, err = AverageRating(foto.ID); err != nil {
		return nil, err
	}
	return &foto, nil
}

// RemoveFoto 删除照片：先删除图床资源，再级联清理评论、评分与标签关联。
func RemoveFoto(fotoID uint, user *model.User) (*model.Foto, error) {
	var foto model.Foto
	err := db.DB.First(&foto, fotoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}

	if !CanModify(user, foto.UserID) {
		return nil, common.NewForbiddenError(consts.MsgForbidden)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := CDNDestroy(ctx, foto.PublicID); err != nil {
		// 图床删除失败不阻断本地清理，仅记录
		log.Printf("CDN destroy error: %v, public_id: %s\n", err, foto.PublicID)
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("foto_id = ?", foto.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("foto_id = ?", foto.ID).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM foto_tags WHERE foto_id = ?", foto.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&foto).Error
	})
	if err != nil {
		log.Printf("Remove foto error: %v\n", err)
		return nil, common.NewInternalError("照片删除失败")
	}
	return &foto, nil
}
