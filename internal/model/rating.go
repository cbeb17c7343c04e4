package model

import "time"

type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Rate      int       `json:"rate" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	// 唯一索引保证同一用户对同一照片只能有一条评分，
	// 并发下重复写入由冲突兜底转换为重复评分错误
	FotoID uint `json:"foto_id" gorm:"not null;uniqueIndex:idx_ratings_foto_user"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_foto_user"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Foto Foto `json:"-" gorm:"foreignKey:FotoID;references:ID;constraint:OnDelete:CASCADE"`
}
