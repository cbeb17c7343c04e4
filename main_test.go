package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"photo-shake-server/internal/config"
	"photo-shake-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

// 测试内容：为 main 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "photo-shake-main-config-*")
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

// 测试内容：验证 exportAPI 会写出有效的 routes.json 路由列表。
func TestExportAPI_WritesRoutesJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(oldwd) }()

	r := gin.New()
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	exportAPI(r)

	b, err := os.ReadFile("routes.json")
	if err != nil {
		t.Fatalf("期望 routes.json: %v", err)
	}
	var routes []map[string]any
	if err := json.Unmarshal(b, &routes); err != nil {
		t.Fatalf("JSON 无效: %v", err)
	}
	if len(routes) == 0 {
		t.Fatalf("期望路由列表非空")
	}
}

// 测试内容：验证 NoRoute 处理对 API 路径与其他路径均返回 404 JSON。
func TestGetNoRouteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.NoRoute(getNoRouteHandler())

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w1.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w1.Code)
	}
	if body := w1.Body.String(); body == "" || body[0] != '{' {
		t.Fatalf("期望 JSON 错误响应，实际为 %q", body)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w2.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w2.Code)
	}
}

// 测试内容：验证欢迎信息打印函数在测试配置下可执行。
func TestPrintWelcomeMessage(t *testing.T) {
	printWelcomeMessage()
}
