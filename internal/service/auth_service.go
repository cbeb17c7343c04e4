package service

import (
	"context"
	"log"
	"time"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/config"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"
	"photo-shake-server/internal/utils"
)

// TokenPair 登录/刷新返回的令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func accessTokenDuration() time.Duration {
	minutes := config.Get().JWT.AccessExpireMinutes
	if minutes <= 0 {
		minutes = 120
	}
	return time.Duration(minutes) * time.Minute
}

func refreshTokenDuration() time.Duration {
	hours := config.Get().JWT.RefreshExpireHours
	if hours <= 0 {
		hours = 168
	}
	return time.Duration(hours) * time.Hour
}

// Login 密码登录。校验顺序：账号存在、邮箱已验证、未被封禁、密码正确。
func Login(email, password string) (*TokenPair, error) {
	user, err := GetUserByEmail(email)
	if err != nil {
		return nil, common.NewUnauthorizedError(consts.MsgInvalidEmail)
	}
	if !user.IsVerify {
		return nil, common.NewUnauthorizedError(consts.MsgNotConfirmed)
	}
	if !user.IsActive {
		return nil, common.NewForbiddenError(consts.MsgUserBanned)
	}
	if !VerifyPassword(user, password) {
		return nil, common.NewUnauthorizedError(consts.MsgInvalidPass)
	}
	return issueTokens(user)
}

// RefreshTokens 用刷新令牌换取新令牌对，旧刷新令牌作废（轮换）
func RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, common.NewUnauthorizedError(consts.MsgInvalidToken)
	}

	user, err := GetUserByID(claims.ID)
	if err != nil {
		return nil, common.NewUnauthorizedError(consts.MsgInvalidToken)
	}
	if user.RefreshToken != refreshToken {
		// 令牌已被轮换或注销，清空存量令牌防止重放
		_ = UpdateRefreshToken(user, "")
		return nil, common.NewUnauthorizedError(consts.MsgInvalidToken)
	}
	if !user.IsActive {
		return nil, common.NewForbiddenError(consts.MsgUserBanned)
	}
	return issueTokens(user)
}

func issueTokens(user *model.User) (*TokenPair, error) {
	access, err := utils.GenerateLoginToken(user.ID, user.Username, user.Role, accessTokenDuration())
	if err != nil {
		log.Printf("Generate access token error: %v\n", err)
		return nil, common.NewInternalError("令牌签发失败")
	}
	refresh, err := utils.GenerateRefreshToken(user.ID, user.Email, refreshTokenDuration())
	if err != nil {
		log.Printf("Generate refresh token error: %v\n", err)
		return nil, common.NewInternalError("令牌签发失败")
	}

	if err := UpdateRefreshToken(user, refresh); err != nil {
		log.Printf("Store refresh token error: %v\n", err)
		return nil, common.NewInternalError("令牌保存失败")
	}

	// 启用 Redis 时镜像一份刷新令牌状态，供会话层快速校验
	if client := GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := RedisKey("auth", "refresh", user.Email)
		_ = client.Set(ctx, key, refresh, refreshTokenDuration()).Err()
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// BlacklistToken 注销访问令牌：写入数据库黑名单，Redis 侧带 TTL 镜像
func BlacklistToken(token string) error {
	record := model.BlacklistToken{
		Token:         token,
		BlacklistedOn: time.Now(),
	}
	if err := db.DB.Create(&record).Error; err != nil {
		// 重复注销同一令牌视为成功
		var existing model.BlacklistToken
		if db.DB.Where("token = ?", token).First(&existing).Error == nil {
			return nil
		}
		log.Printf("Blacklist token error: %v\n", err)
		return common.NewInternalError("注销失败")
	}

	if client := GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := RedisKey("auth", "blacklist", token)
		_ = client.Set(ctx, key, "1", refreshTokenDuration()).Err()
	}
	return nil
}

// IsTokenBlacklisted 检查访问令牌是否已注销。优先查 Redis，未命中回退数据库。
func IsTokenBlacklisted(token string) bool {
	if client := GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := RedisKey("auth", "blacklist", token)
		if n, err := client.Exists(ctx, key).Result(); err == nil && n > 0 {
			return true
		}
	}

	var count int64
	if err := db.DB.Model(&model.BlacklistToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("Blacklist query error: %v\n", err)
		return false
	}
	return count > 0
}
