package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/dto"
)

// ── 图片上传模块业务错误 ──

var (
	ErrImageTooLarge   = errors.New("图片大小超过上限")
	ErrImageBadType    = errors.New("不支持的图片格式")
	ErrAssetSaveFailed = errors.New("图片保存失败")
)

// 允许的图片类型 → 存储扩展名
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AssetService 图片资源存储接口。
// 资源落在本地目录并通过 /uploads/ 静态路由对外提供，
// 业务侧只持有返回的 URL，不关心存储细节。
type AssetService interface {
	// SaveImage 校验大小与类型后保存图片，返回可公开访问的 URL
	SaveImage(r io.Reader, size int64, contentType string) (*dto.UploadResponse, error)
}

type assetService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAssetService 创建 AssetService 实例
func NewAssetService(cfg *config.Config, logger *zap.Logger) AssetService {
	return &assetService{cfg: cfg, logger: logger}
}

func (s *assetService) SaveImage(r io.Reader, size int64, contentType string) (*dto.UploadResponse, error) {
	// 先校验再写盘
	if size <= 0 || size > s.cfg.Upload.MaxImageSize {
		return nil, ErrImageTooLarge
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrImageBadType
	}

	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		s.logger.Error("创建上传目录失败", zap.String("dir", s.cfg.Upload.Dir), zap.Error(err))
		return nil, ErrAssetSaveFailed
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.cfg.Upload.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error("创建图片文件失败", zap.String("path", path), zap.Error(err))
		return nil, ErrAssetSaveFailed
	}
	defer f.Close()

	// 读取上限设为 size+1：若实际内容超过申报大小则视为非法
	written, err := io.Copy(f, io.LimitReader(r, size+1))
	if err != nil {
		os.Remove(path)
		s.logger.Error("写入图片失败", zap.String("path", path), zap.Error(err))
		return nil, ErrAssetSaveFailed
	}
	if written > size {
		os.Remove(path)
		return nil, ErrImageTooLarge
	}

	return &dto.UploadResponse{
		URL: fmt.Sprintf("%s/uploads/%s", s.cfg.Server.BaseURL, filename),
	}, nil
}
