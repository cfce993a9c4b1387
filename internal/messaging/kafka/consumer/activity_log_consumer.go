package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeActivityEvents reads lifecycle events and materializes activity
// log entries. Both topics are read through one group reader.
func ConsumeActivityEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.activity_log")
	log.Info("activity log consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("activity log consumer stopped")
				return
			}
			log.Error("fetch activity event failed", zap.Error(err))
			continue
		}

		if err := handleMessage(ctx, auditService, msg); err != nil {
			if isUniqueViolation(err) {
				log.Warn("activity entry already exists, skipping",
					zap.String("topic", msg.Topic),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("handle activity event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit activity event failed", zap.Error(err))
			continue
		}

		log.Info("activity entry recorded", zap.String("topic", msg.Topic))
	}
}

func handleMessage(ctx context.Context, auditService audit.Service, msg kafkago.Message) error {
	switch msg.Topic {
	case events.UserCreatedTopic:
		var event events.UserCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		return auditService.Record(ctx, "", "USER_CREATED", "user", event.UserID,
			fmt.Sprintf("user created with role %s", event.Role))

	case events.PayrollPaidTopic:
		var event events.PayrollPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		return auditService.Record(ctx, event.PaidBy, "PAYROLL_PAID", "payroll", event.PayrollID,
			fmt.Sprintf("payroll %d/%d paid, net %.2f", event.Month, event.Year, event.NetSalary))

	default:
		return fmt.Errorf("unknown topic: %s", msg.Topic)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
