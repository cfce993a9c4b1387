package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hradmin/internal/app"
	"go-hradmin/internal/messaging/kafka/producer"
	"go-hradmin/internal/shared/connection"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker owns the background loops: draining the outbox to kafka
// and flipping sent invoices past their due date to overdue.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

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

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		zap.L().Fatal("redis connection failed", zap.Error(err))
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		zap.L().Fatal("kafka connection failed", zap.Error(err))
	}
	defer writer.Close()

	reg, err := app.BuildRegistry(gdb, sqlDB, rdb)
	if err != nil {
		zap.L().Fatal("registry build failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, reg.Outbox, writer, logger, cfg.OutboxPollInterval)
	go runOverdueSweep(ctx, reg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	zap.L().Info("worker shutting down", zap.String("signal", sig.String()))
	cancel()
	time.Sleep(time.Second)
}

func runOverdueSweep(ctx context.Context, reg *app.Registry) {
	log := zap.L().Named("invoice.sweep")
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			flipped, err := reg.InvoiceService.SweepOverdue(ctx)
			if err != nil {
				log.Error("overdue sweep failed", zap.Error(err))
				continue
			}
			if flipped > 0 {
				log.Info("invoices marked overdue", zap.Int("count", flipped))
			}
		}
	}
}
