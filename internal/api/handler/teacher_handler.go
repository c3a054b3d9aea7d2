package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/service"
	"github.com/s2005-ops/houndnfound/pkg/response"
)

// TeacherHandler 教师管理接口处理器（仅 super_admin 可访问，由路由中间件保证）
type TeacherHandler struct {
	teacherService service.TeacherService
	logger         *zap.Logger
}

// NewTeacherHandler 创建 TeacherHandler 实例
func NewTeacherHandler(teacherService service.TeacherService, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService, logger: logger}
}

// List 查询教师列表
// GET /api/v1/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	result, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 线下开通教师账号
// POST /api/v1/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	result, err := h.teacherService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.BadRequest(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// UpdateAccessLevel 调整教师权限级别
// PUT /api/v1/teachers/:id/access-level
func (h *TeacherHandler) UpdateAccessLevel(c *gin.Context) {
	var req dto.UpdateAccessLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	result, err := h.teacherService.UpdateAccessLevel(c.Request.Context(), c.Param("id"), &req, getTeacherID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeacherSelfLevelChange):
			response.Forbidden(c, 13003, err.Error())
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 13002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除教师账号
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.teacherService.Delete(c.Request.Context(), c.Param("id"), getTeacherID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrTeacherSelfDelete):
			response.Forbidden(c, 13003, err.Error())
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 13002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
