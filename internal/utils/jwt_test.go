package utils

import (
	"os"
	"testing"
	"time"

	"photo-shake-server/internal/config"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/testutils"
)

// 测试内容：为 utils 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "photo-shake-config-*")
	if err != nil {
		panic(err)
	}

	envs := []testutils.SavedEnv{
		testutils.SetEnv("PHOTO_SHAKE_SERVER_MODE", "debug"),
		testutils.SetEnv("PHOTO_SHAKE_JWT_SECRET", "test_secret"),
	}
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

// 测试内容：验证访问令牌生成与解析的往返一致性。
func TestLoginTokenRoundTrip(t *testing.T) {
	token, err := GenerateLoginToken(42, "alice", consts.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := ParseLoginToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.ID != 42 || claims.Username != "alice" || claims.Role != consts.RoleAdmin {
		t.Fatalf("非预期声明: %+v", claims)
	}
}

// 测试内容：验证过期令牌解析失败。
func TestLoginTokenExpired(t *testing.T) {
	token, err := GenerateLoginToken(1, "bob", consts.RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := ParseLoginToken(token); err == nil {
		t.Fatal("期望过期令牌解析失败")
	}
}

// 测试内容：验证三种令牌类型互不兼容。
func TestTokenTypeIsolation(t *testing.T) {
	access, err := GenerateLoginToken(1, "alice", consts.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("生成访问令牌失败: %v", err)
	}
	refresh, err := GenerateRefreshToken(1, "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("生成刷新令牌失败: %v", err)
	}
	email, err := GenerateEmailToken(1, "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("生成邮箱令牌失败: %v", err)
	}

	if _, err := ParseRefreshToken(access); err == nil {
		t.Fatal("访问令牌不应通过刷新令牌解析")
	}
	if _, err := ParseLoginToken(refresh); err == nil {
		t.Fatal("刷新令牌不应通过访问令牌解析")
	}
	if _, err := ParseEmailToken(refresh); err == nil {
		t.Fatal("刷新令牌不应通过邮箱令牌解析")
	}

	claims, err := ParseEmailToken(email)
	if err != nil || claims.Email != "alice@example.com" {
		t.Fatalf("邮箱令牌解析失败: %v", err)
	}
}

// 测试内容：验证篡改签名的令牌被拒绝。
func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateLoginToken(1, "alice", consts.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseLoginToken(tampered); err == nil {
		t.Fatal("期望篡改令牌解析失败")
	}
}
