package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OutreachEvent is published after a lead has been contacted and marked.
type OutreachEvent struct {
	LeadID      string    `json:"lead_id"`
	ZipCode     string    `json:"zip_code"`
	Channel     string    `json:"channel"`
	IntentScore int       `json:"intent_score"`
	Demo        bool      `json:"demo"`
	SentAt      time.Time `json:"sent_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	ch publisher
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{ch: ch}
}

func (p *RabbitMQProducer) PublishOutreachEvent(ctx context.Context, event OutreachEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal outreach event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey(event.Channel),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.LeadID + ":" + event.Channel,
			Timestamp:    event.SentAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
