package service

import (
	"errors"
	"log"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"

	"gorm.io/gorm"
)

// 评分引擎。策略校验顺序固定：自评 > 重复评分 > 照片不存在。
// 即便照片已被删除，遗留的旧评分仍按重复评分报告。

// CreateRate 给照片投一票
func CreateRate(fotoID uint, rate int, user *model.User) (*model.Rating, error) {
	var selfFoto model.Foto
	isSelfFoto := db.DB.Where("id = ? AND user_id = ?", fotoID, user.ID).
		First(&selfFoto).Error == nil

	var existing model.Rating
	alreadyVoted := db.DB.Where("foto_id = ? AND user_id = ?", fotoID, user.ID).
		First(&existing).Error == nil

	var foto model.Foto
	fotoExists := db.DB.First(&foto, fotoID).Error == nil

	if isSelfFoto {
		return nil, common.NewLockedError(consts.MsgOwnFoto)
	}
	if alreadyVoted {
		return nil, common.NewLockedError(consts.MsgVoteTwice)
	}
	if !fotoExists {
		return nil, common.NewNotFoundError(consts.MsgNoFotoID)
	}

	newRate := model.Rating{
		FotoID: fotoID,
		Rate:   rate,
		UserID: user.ID,
	}
	if err := db.DB.Create(&newRate).Error; err != nil {
		// 并发竞态下唯一索引兜底：再次查询确认后按重复评分报告
		var dup model.Rating
		if db.DB.Where("foto_id = ? AND user_id = ?", fotoID, user.ID).First(&dup).Error == nil {
			return nil, common.NewLockedError(consts.MsgVoteTwice)
		}
		log.Printf("Create rate error: %v\n", err)
		return nil, common.NewInternalError("评分创建失败")
	}
	return &newRate, nil
}

// EditRate 修改评分值。管理员、版主或评分本人可操作；
// 权限不足时显式返回禁止，而非静默忽略。
func EditRate(rateID uint, newRate int, actor *model.User) (*model.Rating, error) {
	var rate model.Rating
	err := db.DB.First(&rate, rateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNoRating)
		}
		log.Printf("Edit rate query error: %v\n", err)
		return nil, common.NewInternalError("查询评分失败")
	}

	if !CanModerate(actor, rate.UserID) {
		return nil, common.NewForbiddenError(consts.MsgForbidden)
	}

	if err := db.DB.Model(&rate).Update("rate", newRate).Error; err != nil {
		log.Printf("Edit rate update error: %v\n", err)
		return nil, common.NewInternalError("评分更新失败")
	}
	rate.Rate = newRate
	return &rate, nil
}

// DeleteRate 删除评分。重复删除为幂等操作：第二次返回不存在且无副作用。
func DeleteRate(rateID uint) (*model.Rating, error) {
	var rate model.Rating
	err := db.DB.First(&rate, rateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNoRating)
		}
		log.Printf("Delete rate query error: %v\n", err)
		return nil, common.NewInternalError("查询评分失败")
	}

	if err := db.DB.Delete(&rate).Error; err != nil {
		log.Printf("Delete rate error: %v\n", err)
		return nil, common.NewInternalError("评分删除失败")
	}
	return &rate, nil
}

// ShowRatings 列出全部评分
func ShowRatings() ([]model.Rating, error) {
	var ratings []model.Rating
	if err := db.DB.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// ShowMyRatings 列出当前用户的全部评分
func ShowMyRatings(user *model.User) ([]model.Rating, error) {
	var ratings []model.Rating
	if err := db.DB.Where("user_id = ?", user.ID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// UserRateFoto 查询指定用户对指定照片的评分
func UserRateFoto(userID, fotoID uint) (*model.Rating, error) {
	var rate model.Rating
	err := db.DB.Where("foto_id = ? AND user_id = ?", fotoID, userID).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNoRating)
		}
		return nil, err
	}
	return &rate, nil
}

// AverageRating 照片的展示评分为全部评分的算术平均，读取时实时计算不缓存
func AverageRating(fotoID uint) (float64, error) {
	var avg *float64
	err := db.DB.Model(&model.Rating{}).
		Where("foto_id = ?", fotoID).
		Select("AVG(rate)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
