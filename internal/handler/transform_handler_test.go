package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/service"
	"photo-shake-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func stubHandlerCDN(t *testing.T) {
	t.Helper()
	prev := service.CDNBuildURL
	t.Cleanup(func() { service.CDNBuildURL = prev })
	service.CDNBuildURL = func(publicID, transformation string) (string, error) {
		return "https://cdn.test/" + transformation + "/" + publicID, nil
	}
}

// 测试内容：验证转换接口编译滤镜并返回更新后的照片。
func TestTransformFoto_OK(t *testing.T) {
	testutils.SetupDB(t)
	stubHandlerCDN(t)

	owner := newHandlerUser(t, consts.RoleUser)
	foto := newHandlerFoto(t, owner)

	r := gin.New()
	r.PATCH("/api/transformations/:id", asUser(owner), TransformFoto)

	body := `{"rotate":{"use_filter":true,"width":400,"degree":45}}`
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/api/transformations/%d", foto.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "c_scale,w_400/a_vflip/a_45") {
		t.Fatalf("非预期转换结果: %s", w.Body.String())
	}
}

// 测试内容：验证他人照片的转换请求返回 404。
func TestTransformFoto_OtherUsers404(t *testing.T) {
	testutils.SetupDB(t)
	stubHandlerCDN(t)

	owner := newHandlerUser(t, consts.RoleUser)
	other := newHandlerUser(t, consts.RoleUser)
	foto := newHandlerFoto(t, owner)

	r := gin.New()
	r.PATCH("/api/transformations/:id", asUser(other), TransformFoto)

	body := `{"rotate":{"use_filter":true,"width":400,"degree":45}}`
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/api/transformations/%d", foto.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), consts.MsgNotFound) {
		t.Fatalf("期望固定提示 %q，实际响应 %s", consts.MsgNotFound, w.Body.String())
	}
}

// 测试内容：验证二维码接口返回 base64 字段。
func TestShowQR_OK(t *testing.T) {
	testutils.SetupDB(t)

	owner := newHandlerUser(t, consts.RoleUser)
	foto := newHandlerFoto(t, owner)

	r := gin.New()
	r.POST("/api/transformations/qr/:id", asUser(owner), ShowQR)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/transformations/qr/%d", foto.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "qr_code") {
		t.Fatalf("期望 qr_code 字段，实际响应 %s", w.Body.String())
	}
}
