package model

import "time"

type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Text      string     `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	UserID    uint       `json:"user_id" gorm:"index"`
	FotoID    uint       `json:"foto_id" gorm:"index"`
	// UpdateStatus 标记评论是否被编辑过
	UpdateStatus bool `json:"update_status" gorm:"default:false"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Foto Foto `json:"-" gorm:"foreignKey:FotoID;references:ID;constraint:OnDelete:CASCADE"`
}
