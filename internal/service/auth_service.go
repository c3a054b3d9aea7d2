package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/repository"
	"github.com/s2005-ops/houndnfound/pkg/jwt"
	"github.com/s2005-ops/houndnfound/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	// ErrInvalidCredentials 账号不存在与密码错误返回同一错误，避免账号枚举
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrSignupDisabled 自助注册已永久关闭，账号由管理员线下开通
	ErrSignupDisabled  = errors.New("注册已关闭，请联系现有教师或管理员开通账号")
	ErrTeacherNotFound = errors.New("教师不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) error
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentTeacher(ctx context.Context, teacherID string) (*dto.TeacherResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 按用户名查询教师
	teacher, err := s.repo.Teacher.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Access Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(teacher.TeacherID, teacher.AccessLevel)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Teacher:     *toTeacherResponse(teacher),
	}, nil
}

// Signup 注册永久关闭：仅预先开通的教师账号可登录
func (s *authService) Signup(_ context.Context, _ *dto.SignupRequest) error {
	return ErrSignupDisabled
}

// Logout 将 Token 加入黑名单；Redis 不可用时降级为直接成功
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentTeacher(ctx context.Context, teacherID string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", teacherID), zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}
