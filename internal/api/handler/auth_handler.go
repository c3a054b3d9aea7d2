package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/service"
	"github.com/s2005-ops/houndnfound/pkg/response"
)

// AuthHandler 认证接口处理器
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Login 教师登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// 账号不存在与密码错误统一返回此错误
			response.Unauthorized(c, 11001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Signup 教师注册（永久关闭）
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	if err := h.authService.Signup(c.Request.Context(), &req); err != nil {
		response.Error(c, http.StatusForbidden, 11002, err.Error())
		return
	}

	response.OK(c, nil)
}

// Logout 教师登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := getTokenJTI(c)
	exp := getTokenExp(c)

	if err := h.authService.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me 获取当前登录教师信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.authService.GetCurrentTeacher(c.Request.Context(), getTeacherID(c))
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 13002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
