package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-hradmin/internal/app"
	"go-hradmin/internal/audit"
	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka/consumer"
	"go-hradmin/internal/shared/connection"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
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

	cfg := app.LoadConfig()

	gdb, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}

	auditService := audit.NewService(audit.NewRepository(gdb))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		GroupID: "hradmin-activity-log",
		GroupTopics: []string{
			events.UserCreatedTopic,
			events.PayrollPaidTopic,
		},
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeActivityEvents(ctx, reader, auditService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	zap.L().Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
}
