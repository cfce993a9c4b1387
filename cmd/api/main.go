package main

import (
	"time"

	"go-hradmin/internal/app"
	"go-hradmin/internal/bootstrap"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/connection"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := app.LoadConfig()

	gdb, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		zap.L().Fatal("unwrap sql.DB failed", zap.Error(err))
	}

	if err := app.Migrate(gdb); err != nil {
		zap.L().Fatal("migration failed", zap.Error(err))
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		zap.L().Fatal("redis connection failed", zap.Error(err))
	}

	reg, err := app.BuildRegistry(gdb, sqlDB, rdb)
	if err != nil {
		zap.L().Fatal("registry build failed", zap.Error(err))
	}

	router := app.NewRouter(reg, rdb)

	bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
}
