package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"photo-shake-server/internal/config"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"
	"photo-shake-server/internal/testutils"
	"photo-shake-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// 测试内容：为 middleware 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	tmpDir, err := os.MkdirTemp("", "photo-shake-config-*")
	if err != nil {
		panic(err)
	}

	envs := []testutils.SavedEnv{
		testutils.SetEnv("PHOTO_SHAKE_SERVER_MODE", "debug"),
		testutils.SetEnv("PHOTO_SHAKE_JWT_SECRET", "test_secret"),
		testutils.SetEnv("PHOTO_SHAKE_REDIS_ENABLED", "false"),
	}
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

func newAuthedRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	r := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", chain...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：验证缺失或格式错误的认证头返回 401。
func TestJWTAuth_MissingOrMalformed(t *testing.T) {
	testutils.SetupDB(t)
	r := newAuthedRouter(t)

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("缺失认证头期望 401，实际为 %d", w.Code)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("错误格式期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证合法令牌通过认证并注入用户上下文。
func TestJWTAuth_ValidToken(t *testing.T) {
	testutils.SetupDB(t)

	token, err := utils.GenerateLoginToken(7, "alice", consts.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	var gotID uint
	var gotRole consts.UserRole
	r := newAuthedRouter(t, func(c *gin.Context) {
		idVal, _ := c.Get("id")
		gotID, _ = idVal.(uint)
		roleVal, _ := c.Get("role")
		gotRole, _ = roleVal.(consts.UserRole)
		c.Next()
	})

	if w := doRequest(r, token); w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	if gotID != 7 || gotRole != consts.RoleUser {
		t.Fatalf("非预期上下文: id=%d role=%q", gotID, gotRole)
	}
}

// 测试内容：验证已注销（黑名单）的令牌被拒绝。
func TestJWTAuth_BlacklistedToken(t *testing.T) {
	testutils.SetupDB(t)

	token, err := utils.GenerateLoginToken(7, "alice", consts.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	record := model.BlacklistToken{Token: token, BlacklistedOn: time.Now()}
	if err := db.DB.Create(&record).Error; err != nil {
		t.Fatalf("写入黑名单失败: %v", err)
	}

	r := newAuthedRouter(t)
	if w := doRequest(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("黑名单令牌期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证状态检查拦截已封禁用户，解除封禁并清缓存后放行。
func TestUserStatusCheck(t *testing.T) {
	testutils.SetupDB(t)

	u := model.User{
		Username: "banned",
		Email:    "banned@example.com",
		Password: "x",
		Role:     consts.RoleUser,
		IsActive: false,
		IsVerify: true,
	}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	token, err := utils.GenerateLoginToken(u.ID, u.Username, u.Role, time.Hour)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	r := newAuthedRouter(t, UserStatusCheck())
	ClearUserStatusCache(u.ID)

	if w := doRequest(r, token); w.Code != http.StatusForbidden {
		t.Fatalf("封禁用户期望 403，实际为 %d", w.Code)
	}

	if err := db.DB.Model(&u).Update("is_active", true).Error; err != nil {
		t.Fatalf("解封失败: %v", err)
	}
	ClearUserStatusCache(u.ID)

	if w := doRequest(r, token); w.Code != http.StatusOK {
		t.Fatalf("解封后期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：验证角色中间件按白名单放行并拒绝其余角色。
func TestRequireRoles(t *testing.T) {
	testutils.SetupDB(t)

	r := gin.New()
	r.GET("/admin", JWTAuth(), AdminCheck(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/moder", JWTAuth(), ModerCheck(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	serve := func(path, token string) int {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	userToken, _ := utils.GenerateLoginToken(1, "u", consts.RoleUser, time.Hour)
	moderToken, _ := utils.GenerateLoginToken(2, "m", consts.RoleModer, time.Hour)
	adminToken, _ := utils.GenerateLoginToken(3, "a", consts.RoleAdmin, time.Hour)

	if code := serve("/admin", userToken); code != http.StatusForbidden {
		t.Fatalf("普通用户访问管理接口期望 403，实际为 %d", code)
	}
	if code := serve("/admin", moderToken); code != http.StatusForbidden {
		t.Fatalf("版主访问管理接口期望 403，实际为 %d", code)
	}
	if code := serve("/admin", adminToken); code != http.StatusOK {
		t.Fatalf("管理员访问管理接口期望 200，实际为 %d", code)
	}
	if code := serve("/moder", moderToken); code != http.StatusOK {
		t.Fatalf("版主访问版主接口期望 200，实际为 %d", code)
	}
	if code := serve("/moder", userToken); code != http.StatusForbidden {
		t.Fatalf("普通用户访问版主接口期望 403，实际为 %d", code)
	}
}

// 测试内容：验证限流器在令牌耗尽后返回 429。
func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(1, 2), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	hit := func() int {
		req := httptest.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := hit(); code != http.StatusOK {
		t.Fatalf("第 1 次请求期望 200，实际为 %d", code)
	}
	if code := hit(); code != http.StatusOK {
		t.Fatalf("第 2 次请求期望 200，实际为 %d", code)
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Fatalf("超出突发容量期望 429，实际为 %d", code)
	}
}

// 测试内容：验证安全标头被写入所有响应。
func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("缺少 X-Content-Type-Options 标头")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("缺少 X-Frame-Options 标头")
	}
}

// 测试内容：验证请求标识中间件生成唯一 ID，客户端传入时沿用。
func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("期望生成请求标识")
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "trace-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "trace-123" {
		t.Fatalf("期望沿用 trace-123，实际为 %q", got)
	}
}
