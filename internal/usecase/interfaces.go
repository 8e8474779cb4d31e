package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/infra/queue"
	"github.com/xavierca1/ligue-prospector/internal/outreach"
)

type PropertySource interface {
	FetchByZip(ctx context.Context, zip string) ([]entity.Property, error)
}

type OutreachGenerator interface {
	Generate(ctx context.Context, facts outreach.Facts) (outreach.Messages, error)
}

type LeadRepository interface {
	InsertBatch(ctx context.Context, leads []entity.Lead) error
	FindEligible(ctx context.Context, zip string, ch entity.Channel, limit int) ([]entity.Lead, error)
	MarkSent(ctx context.Context, id string, ch entity.Channel, at time.Time) error
	ListByZip(ctx context.Context, zip string) ([]entity.Lead, error)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type EventPublisher interface {
	PublishOutreachEvent(ctx context.Context, event queue.OutreachEvent) error
}

// Metrics receives business counters. A nil Metrics is allowed everywhere.
type Metrics interface {
	LeadsGenerated(mode string, n int)
	OutreachAttempt(channel, status string)
	IntegrationError(service string)
}
