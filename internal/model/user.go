package model

import (
	"time"

	"photo-shake-server/internal/consts"
)

type User struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time       `json:"created_at"`
	Username     string          `json:"username" gorm:"size:50;not null"`
	Email        string          `json:"email" gorm:"unique;index;size:250;not null"`
	Password     string          `json:"-" gorm:"size:255;not null"`
	Avatar       string          `json:"avatar" gorm:"size:355"`
	Role         consts.UserRole `json:"role" gorm:"size:20;default:user"`
	RefreshToken string          `json:"-" gorm:"size:500"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	IsVerify     bool            `json:"is_verify" gorm:"default:false"`

	Fotos []Foto `json:"-"`
}

// IsAdmin 判断是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == consts.RoleAdmin
}

// IsModer 判断是否为版主
func (u *User) IsModer() bool {
	return u.Role == consts.RoleModer
}
