package handler

import (
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Item    *ItemHandler
	Teacher *TeacherHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, logger),
		Item:    NewItemHandler(svc.Item, svc.Asset, logger),
		Teacher: NewTeacherHandler(svc.Teacher, logger),
	}
}
