package service

import (
	"errors"
	"log"
	"strings"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"

	"gorm.io/gorm"
)

// 标签按标题全局唯一，首次使用时惰性创建，首个创建者成为记录属主。

// ResolveTags 将原始标签串解析为标签实体，不存在的按需创建。
// 调用方负责把列表长度限制在 5 个以内。
func ResolveTags(titles []string, user *model.User) ([]model.Tag, error) {
	var tags []model.Tag
	for _, raw := range titles {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}

		var tag model.Tag
		err := db.DB.Where("title = ?", title).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Title: title, UserID: user.ID}
			if createErr := db.DB.Create(&tag).Error; createErr != nil {
				// 唯一索引竞态兜底：其他请求先创建了同名标签，重新读取即可
				if db.DB.Where("title = ?", title).First(&tag).Error != nil {
					log.Printf("Create tag error: %v\n", createErr)
					return nil, common.NewInternalError("标签创建失败")
				}
			}
		} else if err != nil {
			log.Printf("Query tag error: %v\n", err)
			return nil, common.NewInternalError("标签查询失败")
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateTag 创建（或返回已存在的）单个标签
func CreateTag(title string, user *model.User) (*model.Tag, error) {
	tags, err := ResolveTags([]string{title}, user)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, common.NewValidationError("标签标题不能为空")
	}
	return &tags[0], nil
}

// GetMyTags 分页列出当前用户创建的标签
func GetMyTags(skip, limit int, user *model.User) ([]model.Tag, error) {
	var tags []model.Tag
	err := db.DB.Where("user_id = ?", user.ID).Offset(skip).Limit(limit).Find(&tags).Error
	return tags, err
}

// GetAllTags 分页列出全部标签
func GetAllTags(skip, limit int) ([]model.Tag, error) {
	var tags []model.Tag
	err := db.DB.Offset(skip).Limit(limit).Find(&tags).Error
	return tags, err
}

// GetTagByID 按 ID 查询标签
func GetTagByID(tagID uint) (*model.Tag, error) {
	var tag model.Tag
	err := db.DB.First(&tag, tagID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}
	return &tag, nil
}

// UpdateTag 重命名标签
func UpdateTag(tagID uint, title string) (*model.Tag, error) {
	tag, err := GetTagByID(tagID)
	if err != nil {
		return nil, err
	}
	if err := db.DB.Model(tag).Update("title", title).Error; err != nil {
		log.Printf("Update tag error: %v\n", err)
		return nil, common.NewInternalError("标签更新失败")
	}
	tag.Title = title
	return tag, nil
}

// RemoveTag 删除标签，照片关联由存储层级联清理
func RemoveTag(tagID uint) (*model.Tag, error) {
	tag, err := GetTagByID(tagID)
	if err != nil {
		return nil, err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM foto_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
	if err != nil {
		log.Printf("Remove tag error: %v\n", err)
		return nil, common.NewInternalError("标签删除失败")
	}
	return tag, nil
}
