package service

import (
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/repository"
	"github.com/s2005-ops/houndnfound/pkg/jwt"
	"github.com/s2005-ops/houndnfound/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Item    ItemService
	Teacher TeacherService
	Asset   AssetService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Item:    NewItemService(cfg, repo, logger),
		Teacher: NewTeacherService(repo, logger),
		Asset:   NewAssetService(cfg, logger),
	}
}
