package service

import (
	"errors"
	"log"
	"time"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"

	"gorm.io/gorm"
)

// CreateComment 在照片下发表评论
func CreateComment(fotoID uint, text string, user *model.User) (*model.Comment, error) {
	var foto model.Foto
	if err := db.DB.First(&foto, fotoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNoFotoID)
		}
		return nil, err
	}

	comment := model.Comment{
		Text:   text,
		UserID: user.ID,
		FotoID: fotoID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		log.Printf("Create comment error: %v\n", err)
		return nil, common.NewInternalError("评论创建失败")
	}
	return &comment, nil
}

// EditComment 编辑评论内容，仅评论本人可操作，编辑后打上已编辑标记
func EditComment(commentID uint, text string, actor *model.User) (*model.Comment, error) {
	var comment model.Comment
	err := db.DB.First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgCommNotFound)
		}
		return nil, err
	}

	if comment.UserID != actor.ID {
		return nil, common.NewForbiddenError(consts.MsgForbidden)
	}

	now := time.Now()
	if err := db.DB.Model(&comment).Updates(map[string]interface{}{
		"text":          text,
		"updated_at":    now,
		"update_status": true,
	}).Error; err != nil {
		log.Printf("Edit comment error: %v\n", err)
		return nil, common.NewInternalError("评论更新失败")
	}
	comment.Text = text
	comment.UpdatedAt = &now
	comment.UpdateStatus = true
	return &comment, nil
}

// DeleteComment 删除评论，评论本人、版主或管理员可操作
func DeleteComment(commentID uint, actor *model.User) (*model.Comment, error) {
	var comment model.Comment
	err := db.DB.First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgCommNotFound)
		}
		return nil, err
	}

	if !CanModerate(actor, comment.UserID) {
		return nil, common.NewForbiddenError(consts.MsgForbidden)
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		log.Printf("Delete comment error: %v\n", err)
		return nil, common.NewInternalError("评论删除失败")
	}
	return &comment, nil
}

// GetMyComments 列出当前用户的全部评论
func GetMyComments(user *model.User) ([]model.Comment, error) {
	var comments []model.Comment
	err := db.DB.Where("user_id = ?", user.ID).Find(&comments).Error
	return comments, err
}
