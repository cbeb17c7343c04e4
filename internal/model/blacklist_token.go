package model

import "time"

// BlacklistToken 已注销的访问令牌，只增不删，存在即拒绝认证
type BlacklistToken struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Token         string    `json:"token" gorm:"size:500;not null;unique"`
	BlacklistedOn time.Time `json:"blacklisted_on"`
}
