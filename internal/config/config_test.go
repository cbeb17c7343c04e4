package config_test

import (
	"os"
	"testing"

	"photo-shake-server/internal/config"
	"photo-shake-server/internal/testutils"
)

func initTestConfig(t *testing.T, envs ...testutils.SavedEnv) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "photo-shake-config-*")
	if err != nil {
		t.Fatalf("创建临时目录失败: %v", err)
	}
	t.Cleanup(func() {
		testutils.RestoreEnv(envs)
		_ = os.RemoveAll(tmpDir)
	})

	config.InitConfig(tmpDir)
}

// 测试内容：验证无配置文件时加载默认值。
func TestInitConfig_Defaults(t *testing.T) {
	initTestConfig(t,
		testutils.SetEnv("PHOTO_SHAKE_SERVER_MODE", "debug"),
	)

	cfg := config.Get()
	if cfg.Server.Port != "8080" {
		t.Fatalf("期望默认端口 8080，实际为 %q", cfg.Server.Port)
	}
	if cfg.Database.Type != "sqlite" {
		t.Fatalf("期望默认数据库 sqlite，实际为 %q", cfg.Database.Type)
	}
	if cfg.JWT.AccessExpireMinutes != 120 {
		t.Fatalf("期望访问令牌默认 120 分钟，实际为 %d", cfg.JWT.AccessExpireMinutes)
	}
	if cfg.JWT.RefreshExpireHours != 168 {
		t.Fatalf("期望刷新令牌默认 168 小时，实际为 %d", cfg.JWT.RefreshExpireHours)
	}
	if cfg.Cloudinary.Folder != "PhotoShake" {
		t.Fatalf("期望默认图床目录 PhotoShake，实际为 %q", cfg.Cloudinary.Folder)
	}
	if cfg.Redis.Enabled {
		t.Fatal("Redis 默认应关闭")
	}
}

// 测试内容：验证 PHOTO_SHAKE_ 前缀的环境变量覆盖配置。
func TestInitConfig_EnvOverride(t *testing.T) {
	initTestConfig(t,
		testutils.SetEnv("PHOTO_SHAKE_SERVER_MODE", "debug"),
		testutils.SetEnv("PHOTO_SHAKE_SERVER_PORT", "9090"),
		testutils.SetEnv("PHOTO_SHAKE_CLOUDINARY_CLOUD_NAME", "demo-cloud"),
		testutils.SetEnv("PHOTO_SHAKE_JWT_ACCESS_EXPIRE_MINUTES", "30"),
	)

	cfg := config.Get()
	if cfg.Server.Port != "9090" {
		t.Fatalf("期望端口 9090，实际为 %q", cfg.Server.Port)
	}
	if cfg.Cloudinary.CloudName != "demo-cloud" {
		t.Fatalf("期望 cloud_name demo-cloud，实际为 %q", cfg.Cloudinary.CloudName)
	}
	if cfg.JWT.AccessExpireMinutes != 30 {
		t.Fatalf("期望访问令牌 30 分钟，实际为 %d", cfg.JWT.AccessExpireMinutes)
	}
}

// 测试内容：验证开发模式下缺省 JWT 密钥回落到开发密钥。
func TestInitConfig_DevSecretFallback(t *testing.T) {
	initTestConfig(t,
		testutils.SetEnv("PHOTO_SHAKE_SERVER_MODE", "debug"),
		testutils.SetEnv("PHOTO_SHAKE_JWT_SECRET", ""),
	)

	cfg := config.Get()
	if cfg.JWT.Secret != "photo_shake_secret" {
		t.Fatalf("期望开发默认密钥，实际为 %q", cfg.JWT.Secret)
	}
}
