package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/model"
	"github.com/s2005-ops/houndnfound/internal/repository"
)

// ── 教师管理模块业务错误 ──

var (
	ErrUsernameExists = errors.New("用户名已存在")
	// 自我保护：super_admin 不能通过管理通道降级或删除自己的账号
	ErrTeacherSelfLevelChange = errors.New("不能修改自己的权限级别")
	ErrTeacherSelfDelete      = errors.New("不能删除自己的账号")
)

// TeacherService 教师管理业务接口（仅 super_admin 可访问）
type TeacherService interface {
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	// Create 线下开通教师账号，临时密码仅在响应中返回一次
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.CreateTeacherResponse, error)
	UpdateAccessLevel(ctx context.Context, id string, req *dto.UpdateAccessLevelRequest, callerID string) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.CreateTeacherResponse, error) {
	// 检查用户名唯一性
	if _, err := s.repo.Teacher.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 生成 10 位随机临时密码（保证包含字母和数字）
	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	teacher := &model.Teacher{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		AccessLevel:  req.AccessLevel,
	}
	if req.Email != "" {
		teacher.Email = &req.Email
	}

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	return &dto.CreateTeacherResponse{
		Teacher:      *toTeacherResponse(teacher),
		TempPassword: tempPassword,
	}, nil
}

// ────────────────────── UpdateAccessLevel ──────────────────────

func (s *teacherService) UpdateAccessLevel(ctx context.Context, id string, req *dto.UpdateAccessLevelRequest, callerID string) (*dto.TeacherResponse, error) {
	if id == callerID {
		return nil, ErrTeacherSelfLevelChange
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	teacher.AccessLevel = req.AccessLevel

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("调整权限级别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

// ────────────────────── Delete ──────────────────────

func (s *teacherService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrTeacherSelfDelete
	}

	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// toTeacherResponse 将 model.Teacher 转换为 dto.TeacherResponse（不含密码哈希）
func toTeacherResponse(teacher *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:          teacher.TeacherID,
		Username:    teacher.Username,
		FullName:    teacher.FullName,
		Email:       teacher.Email,
		AccessLevel: teacher.AccessLevel,
		CreatedAt:   teacher.CreatedAt.Format(time.RFC3339),
	}
}

// generateTempPassword 生成指定长度的临时密码（保证包含字母和数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 10
	}

	result := make([]byte, length)

	// 保证至少1个字母+1个数字
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	// 剩余位随机填充
	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
