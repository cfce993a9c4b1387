package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepo_Create_UsesBoundTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     "req-42",
		AggregateType: "payroll",
		AggregateID:   uuid.New().String(),
		EventType:     "payroll.paid",
		Topic:         "hr.payroll.paid.v1",
		Payload:       []byte(`{"ok":true}`),
		Status:        OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_ListPending_CarriesRequestID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New().String()
	aggID := uuid.New().String()
	now := time.Now()

	mock.ExpectQuery(`SELECT id::text, request_id, aggregate_type, aggregate_id::text, event_type, topic, payload, status, retry_count, COALESCE\(next_retry_at, created_at\) FROM outbox_events WHERE status IN \(\$1, \$2\)`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
			"topic", "payload", "status", "retry_count", "coalesce",
		}).AddRow(id, "req-42", "user", aggID, "user.created",
			"hr.user.lifecycle.v1", []byte(`{}`), OutboxStatusPending, 0, now))

	repo := NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 50)
	assert.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "req-42", events[0].RequestID)
	assert.Equal(t, "hr.user.lifecycle.v1", events[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkFailed_SchedulesCappedBackoff(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New().String()

	mock.ExpectExec(`UPDATE outbox_events SET status = \$2, retry_count = retry_count \+ 1`).
		WithArgs(id, OutboxStatusFailed, "broker unreachable", maxBackoffSteps, int(retryBackoffStep.Seconds())).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkFailed(context.Background(), id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
