package model

import "time"

type Foto struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ImageURL     string    `json:"image_url" gorm:"size:300"`
	TransformURL string    `json:"transform_url" gorm:"type:text"`
	Title        string    `json:"title" gorm:"size:50"`
	Descr        string    `json:"descr" gorm:"size:500"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Done         bool      `json:"done" gorm:"default:false"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	// PublicID 是照片在外部图床中的稳定标识
	PublicID string `json:"public_id" gorm:"size:50;uniqueIndex"`
	// AvgRating 为读取时实时计算的平均评分，无评分时为 0，不落库
	AvgRating float64 `json:"avg_rating" gorm:"-"`

	Tags []Tag `json:"tags" gorm:"many2many:foto_tags;constraint:OnDelete:CASCADE"`
	User User  `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
