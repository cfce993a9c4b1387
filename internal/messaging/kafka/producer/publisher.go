package producer

import (
	"context"

	"go-hradmin/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Messages are keyed by aggregate id so one aggregate's events stay on
// one partition in order. The originating request id rides along as a
// header so consumers can correlate an event with the API call that
// produced it.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
