package service

import (
	"os"
	"testing"

	"photo-shake-server/internal/config"
	"photo-shake-server/internal/testutils"
)

// 测试内容：为 service 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	// 为依赖配置的测试提供稳定默认值（JWT 密钥、过期时间等）。
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
