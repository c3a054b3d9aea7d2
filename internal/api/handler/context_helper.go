package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ── 上下文取值辅助 ──
// 以下取值均依赖 JWTAuth 中间件先行注入，路由配置保证了这一点。

// getTeacherID 读取当前登录教师 ID
func getTeacherID(c *gin.Context) string {
	v, exists := c.Get("teacher_id")
	if !exists {
		return ""
	}
	id, _ := v.(string)
	return id
}

// getTokenJTI 读取当前 Token 的 jti
func getTokenJTI(c *gin.Context) string {
	v, exists := c.Get("token_jti")
	if !exists {
		return ""
	}
	jti, _ := v.(string)
	return jti
}

// getTokenExp 读取当前 Token 的过期时间
func getTokenExp(c *gin.Context) time.Time {
	v, exists := c.Get("token_exp")
	if !exists {
		return time.Time{}
	}
	exp, _ := v.(time.Time)
	return exp
}
