package model

import "time"

type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:25;not null;unique"`
	CreatedAt time.Time `json:"created_at"`
	// UserID 记录首次创建该标签的用户
	UserID uint `json:"user_id" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
