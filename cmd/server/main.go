package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/config"
	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/fallback"
	"github.com/gosecsite/internal/handler"
	"github.com/gosecsite/internal/logger"
	"github.com/gosecsite/internal/router"
	"github.com/gosecsite/internal/service"
	"github.com/gosecsite/internal/storage"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	zl, err := logger.New(cfg.GinMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	// 初始化数据库
	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Silent: cfg.GinMode == gin.ReleaseMode,
	})
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := db.EnsureUser(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zl.Fatal("failed to ensure admin user", zap.Error(err))
	}

	defaults, err := fallback.Load()
	if err != nil {
		zl.Fatal("failed to load default content", zap.Error(err))
	}
	if cfg.SeedDefaults {
		report, err := service.SeedDefaults(context.Background(), gdb, defaults)
		if err != nil {
			zl.Fatal("failed to seed default content", zap.Error(err))
		}
		if len(report) > 0 {
			zl.Info("seeded default content", zap.Any("rows", report))
		}
	}

	blobs, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPath)
	if err != nil {
		zl.Fatal("failed to prepare upload storage", zap.Error(err))
	}

	api := handler.NewAPI(gdb, handler.Options{
		Storage:        blobs,
		MaxUploadBytes: cfg.MaxUploadBytes,
		PublicBaseURL:  cfg.PublicBaseURL,
		UploadURLPath:  cfg.UploadURLPath,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		Defaults:       defaults,
		Logger:         zl,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg, zl)
	zl.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		zl.Fatal("failed to run server", zap.Error(err))
	}
}
