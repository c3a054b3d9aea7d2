package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/api/handler"
	"github.com/s2005-ops/houndnfound/internal/api/middleware"
	"github.com/s2005-ops/houndnfound/internal/model"
	"github.com/s2005-ops/houndnfound/pkg/jwt"
	"github.com/s2005-ops/houndnfound/pkg/redis"
)

// Setup 初始化路由
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	// 请求体上限略高于图片上限，给 multipart 编码留余量
	r.Use(middleware.BodyLimit(cfg.Upload.MaxImageSize + 1<<20))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 上传图片静态托管
	r.Static("/uploads", cfg.Upload.Dir)

	v1 := r.Group("/api/v1")

	// ── 认证接口 ──
	auth := v1.Group("/auth")
	{
		// 登录接口按 IP 限流，抵御撞库
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/logout", middleware.JWTAuth(jwtMgr, rdb), h.Auth.Logout)
		auth.GET("/me", middleware.JWTAuth(jwtMgr, rdb), h.Auth.Me)
	}

	// ── 失物接口 ──
	items := v1.Group("/items")
	{
		// 公开查询（学生查阅页）
		items.GET("", h.Item.List)
		items.GET("/stats", h.Item.Stats)

		// 需登录的操作（注册在参数路由之前，避免被 :id 吞掉）
		authorized := items.Group("", middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("", h.Item.Create)
			authorized.GET("/export", h.Item.Export)
			authorized.POST("/upload", h.Item.Upload)
			authorized.PUT("/:id", h.Item.Update)
			authorized.POST("/:id/collect", h.Item.Collect)
			authorized.DELETE("/:id", h.Item.Delete)
		}

		items.GET("/:id", h.Item.Get)
	}

	// ── 教师管理接口（仅 super_admin）──
	teachers := v1.Group("/teachers",
		middleware.JWTAuth(jwtMgr, rdb),
		middleware.AccessLevelAuth(model.AccessLevelSuperAdmin),
	)
	{
		teachers.GET("", h.Teacher.List)
		teachers.POST("", h.Teacher.Create)
		teachers.PUT("/:id/access-level", h.Teacher.UpdateAccessLevel)
		teachers.DELETE("/:id", h.Teacher.Delete)
	}

	// ── 内部接口（定时任务触发）──
	internal := v1.Group("/internal", middleware.SweepTokenAuth(cfg.Archive.SweepToken))
	{
		internal.POST("/auto-archive", h.Item.AutoArchive)
	}

	return r
}
