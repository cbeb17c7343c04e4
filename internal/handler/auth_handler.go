package handler

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"photo-shake-server/internal/common/httpx"
	"photo-shake-server/internal/config"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/middleware"
	"photo-shake-server/internal/service"
	"photo-shake-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// Signup 用户注册，成功后异步发送验证邮件
func Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	user, err := service.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "注册失败")
		return
	}

	// 生成邮箱验证链接并异步发送，失败不阻塞注册流程
	emailExpire := time.Duration(config.Get().JWT.EmailTokenExpireHours) * time.Hour
	token, err := utils.GenerateEmailToken(user.ID, user.Email, emailExpire)
	if err != nil {
		log.Printf("⚠️ 生成邮箱验证 Token 失败: %v", err)
	} else {
		verifyUrl := fmt.Sprintf("%s/api/auth/confirmed_email/%s", requestBaseURL(c), token)
		go func() {
			if err := service.SendVerificationEmail(user.Email, user.Username, verifyUrl); err != nil {
				log.Printf("⚠️ 发送验证邮件失败: %v", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"detail": "注册成功，请前往邮箱完成验证",
	})
}

// Login 邮箱密码登录，返回访问令牌与刷新令牌
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	pair, err := service.Login(req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout 注销当前访问令牌（加入黑名单）
func Logout(c *gin.Context) {
	tokenVal, exists := c.Get(middleware.ContextKeyToken)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": consts.MsgInvalidToken})
		return
	}

	token, ok := tokenVal.(string)
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": consts.MsgInvalidToken})
		return
	}

	if err := service.BlacklistToken(token); err != nil {
		httpx.WriteServiceError(c, err, "注销失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": consts.MsgLogout})
}

// RefreshToken 使用刷新令牌换取新的令牌对（旧刷新令牌作废）
func RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误"})
		return
	}

	pair, err := service.RefreshTokens(parts[1])
	if err != nil {
		httpx.WriteServiceError(c, err, "刷新令牌失败")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// ConfirmedEmail 校验邮箱验证令牌并标记邮箱已验证
func ConfirmedEmail(c *gin.Context) {
	token := c.Param("token")
	claims, err := utils.ParseEmailToken(token)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": consts.MsgInvalidToken})
		return
	}

	if err := service.ConfirmEmail(claims.Email); err != nil {
		httpx.WriteServiceError(c, err, "邮箱验证失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": consts.MsgEmailConfirmed})
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
