package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/infra/queue"
)

const (
	SendBatchSize = 10
	DemoSendDelay = 100 * time.Millisecond
)

// SendOutreachUseCase contacts the best unsent leads of a ZIP code on one
// channel, one at a time.
type SendOutreachUseCase struct {
	Channel   entity.Channel
	Repo      LeadRepository
	Email     EmailSender
	SMS       SMSSender
	Publisher EventPublisher
	Logger    *zap.Logger
	Metrics   Metrics
	Demo      bool
	Limit     int
	DemoDelay time.Duration

	now func() time.Time
}

func NewSendEmailsUseCase(repo LeadRepository, sender EmailSender, publisher EventPublisher, logger *zap.Logger, metrics Metrics, demo bool) *SendOutreachUseCase {
	uc := newSendOutreachUseCase(entity.ChannelEmail, repo, publisher, logger, metrics, demo)
	uc.Email = sender
	return uc
}

func NewSendSMSUseCase(repo LeadRepository, sender SMSSender, publisher EventPublisher, logger *zap.Logger, metrics Metrics, demo bool) *SendOutreachUseCase {
	uc := newSendOutreachUseCase(entity.ChannelSMS, repo, publisher, logger, metrics, demo)
	uc.SMS = sender
	return uc
}

func newSendOutreachUseCase(ch entity.Channel, repo LeadRepository, publisher EventPublisher, logger *zap.Logger, metrics Metrics, demo bool) *SendOutreachUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendOutreachUseCase{
		Channel:   ch,
		Repo:      repo,
		Publisher: publisher,
		Logger:    logger.With(zap.String("channel", string(ch))),
		Metrics:   metricsOrNop(metrics),
		Demo:      demo,
		Limit:     SendBatchSize,
		DemoDelay: DemoSendDelay,
		now:       time.Now,
	}
}

func (uc *SendOutreachUseCase) Execute(ctx context.Context, input SendOutreachInput) (*SendOutreachOutput, error) {
	if err := requireZipCode(input.ZipCode); err != nil {
		return nil, err
	}

	leads, err := uc.Repo.FindEligible(ctx, input.ZipCode, uc.Channel, uc.Limit)
	if err != nil {
		uc.Logger.Error("failed to select leads", zap.String("zip", input.ZipCode), zap.Error(err))
		return nil, &TechnicalError{Code: CodePersistence, Message: "Failed to fetch leads", Err: err}
	}
	if len(leads) == 0 {
		return nil, &DomainError{
			Code:    CodeNotFound,
			Message: fmt.Sprintf("No unsent leads with %s content found", uc.Channel.Label()),
		}
	}

	out := &SendOutreachOutput{
		Total:   len(leads),
		Results: make([]SendResult, 0, len(leads)),
		Demo:    uc.Demo,
	}
	for i := range leads {
		lead := &leads[i]
		if err := uc.sendOne(ctx, lead); err != nil {
			uc.Metrics.OutreachAttempt(string(uc.Channel), "failed")
			uc.Logger.Warn("outreach failed", zap.String("lead_id", lead.ID), zap.Error(err))
			out.Results = append(out.Results, SendResult{ID: lead.ID, Status: "failed: " + err.Error()})
			continue
		}
		out.Sent++
		out.Results = append(out.Results, SendResult{ID: lead.ID, Status: "sent"})
		uc.Metrics.OutreachAttempt(string(uc.Channel), "sent")
		uc.publish(ctx, lead)
	}

	uc.Logger.Info("outreach batch finished",
		zap.String("zip", input.ZipCode),
		zap.Int("sent", out.Sent),
		zap.Int("total", out.Total),
		zap.Bool("demo", uc.Demo),
	)
	return out, nil
}

// sendOne delivers the message and flips the sent flag. The flag stays
// untouched when either step fails.
func (uc *SendOutreachUseCase) sendOne(ctx context.Context, lead *entity.Lead) error {
	if err := uc.deliver(ctx, lead); err != nil {
		return err
	}
	at := uc.now()
	if err := uc.Repo.MarkSent(ctx, lead.ID, uc.Channel, at); err != nil {
		return err
	}
	lead.MarkSent(uc.Channel, at)
	return nil
}

func (uc *SendOutreachUseCase) deliver(ctx context.Context, lead *entity.Lead) error {
	if uc.Demo {
		t := time.NewTimer(uc.DemoDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}

	content, contact := lead.Content(uc.Channel), lead.Contact(uc.Channel)
	if content == nil || contact == nil {
		return fmt.Errorf("lead has no %s content or contact", uc.Channel.Label())
	}

	switch uc.Channel {
	case entity.ChannelEmail:
		if uc.Email == nil {
			return errors.New("email sender is not configured")
		}
		return uc.Email.Send(ctx, *contact, "Interested in your property at "+lead.Address, *content)
	case entity.ChannelSMS:
		if uc.SMS == nil {
			return errors.New("SMS sender is not configured")
		}
		sid, err := uc.SMS.Send(ctx, *contact, *content)
		if err != nil {
			return err
		}
		uc.Logger.Debug("sms queued", zap.String("lead_id", lead.ID), zap.String("sid", sid))
		return nil
	}
	return uc.Channel.Validate()
}

func (uc *SendOutreachUseCase) publish(ctx context.Context, lead *entity.Lead) {
	if uc.Publisher == nil {
		return
	}
	err := uc.Publisher.PublishOutreachEvent(ctx, queue.OutreachEvent{
		LeadID:      lead.ID,
		ZipCode:     lead.ZipCode,
		Channel:     string(uc.Channel),
		IntentScore: lead.IntentScore,
		Demo:        uc.Demo,
		SentAt:      lead.UpdatedAt,
	})
	if err != nil {
		// already marked in the store; the event is lost
		uc.Metrics.IntegrationError("rabbitmq")
		uc.Logger.Error("failed to publish outreach event", zap.String("lead_id", lead.ID), zap.Error(err))
	}
}
