package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestAssetService(t *testing.T) AssetService {
	t.Helper()
	cfg := newTestConfig()
	cfg.Upload.Dir = t.TempDir()
	cfg.Server.BaseURL = "http://localhost:8080"
	return NewAssetService(cfg, zap.NewNop())
}

func TestSaveImage_Success(t *testing.T) {
	svc := newTestAssetService(t)

	content := []byte("fake-png-bytes")
	result, err := svc.SaveImage(bytes.NewReader(content), int64(len(content)), "image/png")
	if err != nil {
		t.Fatalf("保存图片应成功, 得到错误: %v", err)
	}
	if !strings.HasPrefix(result.URL, "http://localhost:8080/uploads/") {
		t.Errorf("URL 前缀不正确: %s", result.URL)
	}
	if !strings.HasSuffix(result.URL, ".png") {
		t.Errorf("扩展名应为 .png: %s", result.URL)
	}
}

func TestSaveImage_TooLarge(t *testing.T) {
	cfg := newTestConfig()
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxImageSize = 16
	svc := NewAssetService(cfg, zap.NewNop())

	content := bytes.Repeat([]byte("x"), 17)
	if _, err := svc.SaveImage(bytes.NewReader(content), int64(len(content)), "image/jpeg"); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("超限图片应返回 ErrImageTooLarge, 得到 %v", err)
	}
}

// 申报大小合规但实际内容超限：落盘文件必须被清理
func TestSaveImage_UndersizedClaimRejected(t *testing.T) {
	cfg := newTestConfig()
	cfg.Upload.Dir = t.TempDir()
	svc := NewAssetService(cfg, zap.NewNop())

	content := bytes.Repeat([]byte("x"), 100)
	if _, err := svc.SaveImage(bytes.NewReader(content), 10, "image/jpeg"); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("实际内容超过申报大小应返回 ErrImageTooLarge, 得到 %v", err)
	}

	entries, err := os.ReadDir(cfg.Upload.Dir)
	if err != nil {
		t.Fatalf("读取上传目录失败: %v", err)
	}
	for _, e := range entries {
		t.Errorf("残留文件应被清理: %s", filepath.Join(cfg.Upload.Dir, e.Name()))
	}
}

func TestSaveImage_BadContentType(t *testing.T) {
	svc := newTestAssetService(t)

	cases := []string{"application/pdf", "text/html", "image/svg+xml", ""}
	for _, ct := range cases {
		content := []byte("data")
		if _, err := svc.SaveImage(bytes.NewReader(content), int64(len(content)), ct); !errors.Is(err, ErrImageBadType) {
			t.Errorf("类型 %q 应返回 ErrImageBadType, 得到 %v", ct, err)
		}
	}
}
