package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"
	"photo-shake-server/internal/testutils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupTestDB 为单个测试准备独立的内存数据库，并把图床调用替换为桩实现。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := testutils.SetupDB(t)
	stubCDN(t)
	return gdb
}

// stubCDN 把图床上传、删除、URL 构建换成无副作用的本地桩。
func stubCDN(t *testing.T) {
	t.Helper()

	prevUpload := CDNUpload
	prevDestroy := CDNDestroy
	prevBuildURL := CDNBuildURL
	t.Cleanup(func() {
		CDNUpload = prevUpload
		CDNDestroy = prevDestroy
		CDNBuildURL = prevBuildURL
	})

	CDNUpload = func(ctx context.Context, file io.Reader, publicID string) error {
		_, err := io.Copy(io.Discard, file)
		return err
	}
	CDNDestroy = func(ctx context.Context, publicID string) error {
		return nil
	}
	CDNBuildURL = func(publicID string, transformation string) (string, error) {
		if transformation == "" {
			return "https://cdn.test/" + publicID, nil
		}
		return "https://cdn.test/" + transformation + "/" + publicID, nil
	}
}

var testUserSeq int

// createTestUser 创建一个已验证、未封禁的测试用户。
func createTestUser(t *testing.T, role consts.UserRole) *model.User {
	t.Helper()

	testUserSeq++
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}

	u := model.User{
		Username: fmt.Sprintf("user%d", testUserSeq),
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Password: string(hashed),
		Role:     role,
		IsActive: true,
		IsVerify: true,
	}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return &u
}

var testFotoSeq int

// createTestFoto 直接落库创建一张测试照片，绕过图床上传流程。
func createTestFoto(t *testing.T, owner *model.User) *model.Foto {
	t.Helper()

	testFotoSeq++
	foto := model.Foto{
		ImageURL:     "https://cdn.test/foto",
		TransformURL: "https://cdn.test/foto",
		Title:        "test foto",
		Descr:        "test descr",
		Done:         true,
		UserID:       owner.ID,
		PublicID:     fmt.Sprintf("PhotoShake/%d/%d", owner.ID, testFotoSeq),
	}
	if err := db.DB.Create(&foto).Error; err != nil {
		t.Fatalf("创建测试照片失败: %v", err)
	}
	return &foto
}

// mustFileHeader 用给定内容构造一个 multipart 文件头。
func mustFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("创建表单文件失败: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("写入表单文件失败: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(int64(buf.Len()) + 1024); err != nil {
		t.Fatalf("解析 multipart 失败: %v", err)
	}
	files := req.MultipartForm.File["file"]
	if len(files) == 0 {
		t.Fatal("未找到上传文件")
	}
	return files[0]
}
