// 一次性执行自动归档的命令行工具，供外部 cron 调度：
//
//	0 3 * * * /usr/local/bin/sweep -config /etc/lostfound/config.yaml
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/repository"
	"github.com/s2005-ops/houndnfound/internal/service"
	"github.com/s2005-ops/houndnfound/pkg/database"
	"github.com/s2005-ops/houndnfound/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	timeout := flag.Duration("timeout", 5*time.Minute, "执行超时时间")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("连接数据库失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	itemService := service.NewItemService(cfg, repo, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	count, err := itemService.AutoArchive(ctx)
	if err != nil {
		zapLogger.Fatal("自动归档执行失败", zap.Error(err))
	}

	zapLogger.Info("归档任务结束", zap.Int64("archived_count", count))
}
