package middleware

import (
	"context"
	"net/http"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"
	"photo-shake-server/internal/service"
	"photo-shake-server/internal/utils"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ContextKeyToken 当前请求携带的原始访问令牌，注销接口需要
const ContextKeyToken = "access_token"

var (
	// statusCache 缓存用户激活状态，减少数据库查询
	// Key: userID (uint), Value: cachedStatus
	statusCache sync.Map
)

const statusCacheTTL = 1 * time.Minute

type cachedStatus struct {
	IsActive  bool
	ExpiresAt time.Time
}

// ClearUserStatusCache 清除指定用户的状态缓存（封禁/解封后调用）
func ClearUserStatusCache(userID uint) {
	statusCache.Delete(userID)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := service.RedisKey("auth", "user_active", strconv.FormatUint(uint64(userID), 10))
		_ = redisClient.Del(ctx, key).Err()
	}
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取请求头 Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
			c.Abort()
			return
		}

		// 检查格式是否为 "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误"})
			c.Abort()
			return
		}

		// 解析 Token
		claims, err := utils.ParseLoginToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": consts.MsgInvalidToken})
			c.Abort()
			return
		}

		// 已注销的令牌直接拒绝
		if service.IsTokenBlacklisted(parts[1]) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": consts.MsgInvalidToken})
			c.Abort()
			return
		}

		c.Set("id", claims.ID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set(ContextKeyToken, parts[1])
		c.Next()
	}
}

// UserStatusCheck 拦截已封禁用户。优先 Redis，其次本地缓存，最后查库。
func UserStatusCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
			c.Abort()
			return
		}

		uid, ok := userID.(uint)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户ID类型"})
			c.Abort()
			return
		}

		var (
			isActive    bool
			statusFound bool
		)

		// 优先从 Redis 读取
		if redisClient := service.GetRedisClient(); redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			key := service.RedisKey("auth", "user_active", strconv.FormatUint(uint64(uid), 10))
			cachedVal, err := redisClient.Get(ctx, key).Result()
			if err == nil {
				isActive = cachedVal == "1"
				statusFound = true
				statusCache.Store(uid, cachedStatus{
					IsActive:  isActive,
					ExpiresAt: time.Now().Add(statusCacheTTL),
				})
			}
		}

		// Redis 未命中或不可用时，回退本地内存缓存
		if !statusFound {
			if val, ok := statusCache.Load(uid); ok {
				cached, typeOk := val.(cachedStatus)
				if typeOk {
					if time.Now().Before(cached.ExpiresAt) {
						isActive = cached.IsActive
						statusFound = true
					} else {
						statusCache.Delete(uid)
					}
				}
			}
		}

		// 缓存未命中或过期，查询数据库
		if !statusFound {
			var user model.User
			if err := db.DB.Select("is_active").First(&user, uid).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
				c.Abort()
				return
			}
			isActive = user.IsActive

			// 写入缓存
			statusCache.Store(uid, cachedStatus{
				IsActive:  isActive,
				ExpiresAt: time.Now().Add(statusCacheTTL),
			})

			if redisClient := service.GetRedisClient(); redisClient != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()

				key := service.RedisKey("auth", "user_active", strconv.FormatUint(uint64(uid), 10))
				val := "0"
				if isActive {
					val = "1"
				}
				_ = redisClient.Set(ctx, key, val, statusCacheTTL).Err()
			}
		}

		if !isActive {
			c.JSON(http.StatusForbidden, gin.H{"error": consts.MsgUserBanned})
			c.Abort()
			return
		}

		c.Next()
	}
}
