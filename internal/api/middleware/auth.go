package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/s2005-ops/houndnfound/pkg/jwt"
	"github.com/s2005-ops/houndnfound/pkg/redis"
	"github.com/s2005-ops/houndnfound/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// rdb 非 nil 时检查 Token 黑名单（已登出的 Token 拒绝访问）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		// 黑名单检查；Redis 出错时降级放行
		if rdb != nil {
			if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
		}

		// 将教师信息注入上下文
		c.Set("teacher_id", claims.TeacherID)
		c.Set("access_level", claims.AccessLevel)
		c.Set("token_jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}

// AccessLevelAuth 权限级别中间件
// 检查当前教师是否具有指定权限级别之一
func AccessLevelAuth(allowedLevels ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		level, exists := c.Get("access_level")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		teacherLevel := level.(string)
		for _, l := range allowedLevels {
			if teacherLevel == l {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
