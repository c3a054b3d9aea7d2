package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/s2005-ops/houndnfound/pkg/response"
)

// SweepTokenAuth 内部归档接口鉴权中间件
// 校验 X-Sweep-Token 请求头（或 Bearer 头），供定时任务调用内部接口使用。
// 未配置 token 时直接拒绝，避免误开放内部接口。
func SweepTokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, http.StatusForbidden, 10003, "内部接口未启用")
			c.Abort()
			return
		}

		got := c.GetHeader("X-Sweep-Token")
		if got == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				got = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Error(c, http.StatusUnauthorized, 10001, "无效的内部调用凭证")
			c.Abort()
			return
		}

		c.Next()
	}
}
