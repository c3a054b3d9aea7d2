package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/model"
	"github.com/s2005-ops/houndnfound/pkg/jwt"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-tests",
			AccessTokenTTL: 12 * time.Hour,
		},
		Archive: config.ArchiveConfig{
			Retention: 720 * time.Hour,
		},
		Upload: config.UploadConfig{
			Dir:          "",
			MaxImageSize: 5 << 20,
		},
	}
}

func newTestAuthService(teacherRepo *mockTeacherRepo) AuthService {
	cfg := newTestConfig()
	repo := newTestRepository(newMockItemRepo(), teacherRepo)
	return NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
}

func seedTeacher(t *testing.T, repo *mockTeacherRepo, username, password, accessLevel string) *model.Teacher {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	teacher := &model.Teacher{
		Username:     username,
		FullName:     "测试教师",
		PasswordHash: string(hash),
		AccessLevel:  accessLevel,
	}
	if err := repo.Create(context.Background(), teacher); err != nil {
		t.Fatalf("写入测试教师失败: %v", err)
	}
	return teacher
}

func TestLogin_Success(t *testing.T) {
	teacherRepo := newMockTeacherRepo()
	seedTeacher(t, teacherRepo, "zhang_wei", "correct-password", model.AccessLevelUser)
	svc := newTestAuthService(teacherRepo)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhang_wei",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("登录应成功, 得到错误: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.ExpiresIn != int((12 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn 应为 43200, 得到 %d", result.ExpiresIn)
	}
	if result.Teacher.Username != "zhang_wei" {
		t.Errorf("用户名应为 zhang_wei, 得到 %s", result.Teacher.Username)
	}
}

// 登录响应序列化后不应包含任何密码相关字段
func TestLogin_ResponseOmitsPasswordHash(t *testing.T) {
	teacherRepo := newMockTeacherRepo()
	seedTeacher(t, teacherRepo, "zhang_wei", "correct-password", model.AccessLevelUser)
	svc := newTestAuthService(teacherRepo)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhang_wei",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("登录应成功, 得到错误: %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("序列化响应失败: %v", err)
	}
	if strings.Contains(strings.ToLower(string(data)), "password") {
		t.Errorf("登录响应不应包含密码字段: %s", data)
	}
}

// 密码错误与账号不存在必须返回完全相同的错误，避免账号枚举
func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	teacherRepo := newMockTeacherRepo()
	seedTeacher(t, teacherRepo, "zhang_wei", "correct-password", model.AccessLevelUser)
	svc := newTestAuthService(teacherRepo)

	_, errWrongPassword := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhang_wei",
		Password: "wrong-password",
	})
	_, errUnknownUser := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "no_such_user",
		Password: "whatever",
	})

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("密码错误应返回 ErrInvalidCredentials, 得到 %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Errorf("账号不存在应返回 ErrInvalidCredentials, 得到 %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Errorf("两种失败的错误信息必须一致: %q vs %q",
			errWrongPassword.Error(), errUnknownUser.Error())
	}
}

func TestSignup_AlwaysDisabled(t *testing.T) {
	svc := newTestAuthService(newMockTeacherRepo())

	err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "new_teacher",
		Password: "some-password",
	})
	if !errors.Is(err, ErrSignupDisabled) {
		t.Errorf("注册应始终返回 ErrSignupDisabled, 得到 %v", err)
	}
}

// Redis 未配置时登出应直接成功
func TestLogout_NilRedis(t *testing.T) {
	svc := newTestAuthService(newMockTeacherRepo())

	err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))
	if err != nil {
		t.Errorf("Redis 为空时登出应降级成功, 得到 %v", err)
	}
}

func TestGetCurrentTeacher(t *testing.T) {
	teacherRepo := newMockTeacherRepo()
	teacher := seedTeacher(t, teacherRepo, "zhang_wei", "correct-password", model.AccessLevelAdmin)
	svc := newTestAuthService(teacherRepo)

	result, err := svc.GetCurrentTeacher(context.Background(), teacher.TeacherID)
	if err != nil {
		t.Fatalf("查询当前教师应成功, 得到错误: %v", err)
	}
	if result.ID != teacher.TeacherID {
		t.Errorf("教师 ID 不匹配: %s != %s", result.ID, teacher.TeacherID)
	}
	if result.AccessLevel != model.AccessLevelAdmin {
		t.Errorf("权限级别应为 admin, 得到 %s", result.AccessLevel)
	}

	if _, err := svc.GetCurrentTeacher(context.Background(), "non-existent-id"); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("不存在的教师应返回 ErrTeacherNotFound, 得到 %v", err)
	}
}
