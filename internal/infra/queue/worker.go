package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventHandler processes one outreach event taken off the queue.
type EventHandler interface {
	HandleOutreachEvent(ctx context.Context, event OutreachEvent) error
}

type Worker struct {
	Channel *amqp.Channel
	Handler EventHandler
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, handler EventHandler, logger *zap.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Handler: handler,
		Logger:  logger,
	}
}

// Run consumes queueName until ctx is cancelled or the delivery channel closes.
func (w *Worker) Run(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register RabbitMQ consumer: %w", err)
	}

	w.Logger.Info("worker waiting for outreach events", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.process(ctx, d)
		}
	}
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	var event OutreachEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Logger.Warn("discarding malformed outreach event", zap.Error(err))
		// dead-lettered, never requeued
		_ = d.Nack(false, false)
		return
	}

	if err := w.Handler.HandleOutreachEvent(ctx, event); err != nil {
		w.Logger.Error("outreach event handler failed",
			zap.String("lead_id", event.LeadID),
			zap.String("channel", event.Channel),
			zap.Error(err),
		)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// LogHandler records every event in the structured log.
type LogHandler struct {
	Logger *zap.Logger
}

func (h LogHandler) HandleOutreachEvent(_ context.Context, event OutreachEvent) error {
	h.Logger.Info("outreach delivered",
		zap.String("lead_id", event.LeadID),
		zap.String("zip_code", event.ZipCode),
		zap.String("channel", event.Channel),
		zap.Int("intent_score", event.IntentScore),
		zap.Bool("demo", event.Demo),
		zap.Time("sent_at", event.SentAt),
	)
	return nil
}
