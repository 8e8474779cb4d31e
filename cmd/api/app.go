package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/config"
	"github.com/xavierca1/ligue-prospector/internal/infra/database"
	"github.com/xavierca1/ligue-prospector/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-prospector/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-prospector/internal/infra/integration/attom"
	"github.com/xavierca1/ligue-prospector/internal/infra/integration/gemini"
	"github.com/xavierca1/ligue-prospector/internal/infra/integration/openai"
	"github.com/xavierca1/ligue-prospector/internal/infra/integration/sendgrid"
	"github.com/xavierca1/ligue-prospector/internal/infra/integration/twilio"
	"github.com/xavierca1/ligue-prospector/internal/infra/mail"
	"github.com/xavierca1/ligue-prospector/internal/infra/queue"
	"github.com/xavierca1/ligue-prospector/internal/logging"
	"github.com/xavierca1/ligue-prospector/internal/outreach"
	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

// app holds the process-wide dependencies shared by the subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	db     *sqlx.DB
	rabbit *queue.RabbitMQ
	repo   usecase.LeadRepository
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	if cfg.Database.URL == "" {
		logger.Warn("DATABASE_URL not set, leads are kept in memory")
		a.repo = database.NewMemoryLeadRepository()
		return a, nil
	}

	db, err := database.NewDBConnection(ctx, cfg.Database.Driver, cfg.Database.URL, cfg.Database.AccessKey)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.repo = database.NewLeadRepository(db)
	return a, nil
}

// connectQueue is optional: a broker that cannot be reached only disables
// event publishing.
func (a *app) connectQueue() {
	if a.cfg.Queue.URL == "" {
		return
	}
	rmq, err := queue.NewRabbitMQ(a.cfg.Queue.URL)
	if err != nil {
		a.logger.Warn("rabbitmq unavailable, outreach events disabled", zap.Error(err))
		return
	}
	a.rabbit = rmq
}

func (a *app) Close() {
	if a.rabbit != nil {
		a.rabbit.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	a.logger.Sync()
}

func (a *app) propertySource() usecase.PropertySource {
	client, err := attom.NewClient(a.cfg.Attom.APIKey, a.cfg.Attom.BaseURL)
	if err != nil {
		a.logger.Warn("property source unavailable", zap.Error(err))
		return usecase.UnavailableSource{Err: err}
	}
	return client
}

func (a *app) generator(ctx context.Context) usecase.OutreachGenerator {
	var (
		completer outreach.Completer
		err       error
	)
	switch a.cfg.Model.Provider {
	case config.ProviderGemini:
		completer, err = gemini.NewClient(ctx, a.cfg.Model.GeminiKey, a.cfg.Model.GeminiModel)
	default:
		completer, err = openai.NewClient(a.cfg.Model.OpenAIKey, a.cfg.Model.OpenAIBaseURL, a.cfg.Model.OpenAIModel)
	}
	if err != nil {
		a.logger.Warn("language model unavailable", zap.String("provider", a.cfg.Model.Provider), zap.Error(err))
		return usecase.UnavailableGenerator{Err: err}
	}

	gen, err := outreach.NewGenerator(completer)
	if err != nil {
		return usecase.UnavailableGenerator{Err: err}
	}
	return gen
}

func (a *app) emailSender() usecase.EmailSender {
	var (
		sender usecase.EmailSender
		err    error
	)
	e := a.cfg.Email
	if e.Provider == config.ProviderSMTP {
		sender, err = mail.NewEmailSender(e.SMTPHost, e.SMTPPort, e.SMTPUser, e.SMTPPassword, e.FromEmail)
	} else {
		sender, err = sendgrid.NewClient(e.SendGridKey, e.SendGridBaseURL, e.FromEmail)
	}
	if err != nil {
		a.logger.Warn("email sender unavailable", zap.String("provider", e.Provider), zap.Error(err))
		return usecase.UnavailableEmailSender{Err: err}
	}
	return sender
}

func (a *app) smsSender() usecase.SMSSender {
	s := a.cfg.SMS
	client, err := twilio.NewClient(s.AccountSID, s.AuthToken, s.FromNumber, s.BaseURL)
	if err != nil {
		a.logger.Warn("sms sender unavailable", zap.Error(err))
		return usecase.UnavailableSMSSender{Err: err}
	}
	return client
}

// buildRoutes builds the HTTP layer. Providers are only constructed for the
// paths that are not running in demo mode.
func (a *app) buildRoutes(ctx context.Context) routes {
	metrics := middleware.Recorder{}

	var publisher usecase.EventPublisher
	if a.rabbit != nil {
		publisher = queue.NewProducer(a.rabbit.Ch)
	}

	retrievalDemo := a.cfg.RetrievalDemo()
	var (
		source    usecase.PropertySource
		generator usecase.OutreachGenerator
	)
	if !retrievalDemo {
		source = a.propertySource()
		generator = a.generator(ctx)
	}

	var email usecase.EmailSender
	if !a.cfg.EmailDemo() {
		email = a.emailSender()
	}
	var sms usecase.SMSSender
	if !a.cfg.SMSDemo() {
		sms = a.smsSender()
	}

	fetchUC := usecase.NewFetchLeadsUseCase(source, generator, a.repo, a.logger, metrics, retrievalDemo, a.cfg.Model.Concurrency)
	savedUC := usecase.NewListSavedLeadsUseCase(a.repo)
	emailUC := usecase.NewSendEmailsUseCase(a.repo, email, publisher, a.logger, metrics, a.cfg.EmailDemo())
	smsUC := usecase.NewSendSMSUseCase(a.repo, sms, publisher, a.logger, metrics, a.cfg.SMSDemo())

	var db handlers.Pinger
	if a.db != nil {
		db = a.repo.(*database.LeadRepository)
	}
	var broker interface{ Healthy() bool }
	if a.rabbit != nil {
		broker = a.rabbit
	}

	a.logger.Info("outreach modes",
		zap.Bool("retrieval_demo", retrievalDemo),
		zap.Bool("email_demo", a.cfg.EmailDemo()),
		zap.Bool("sms_demo", a.cfg.SMSDemo()),
	)

	return routes{
		Leads: handlers.NewLeadHandler(fetchUC, savedUC, a.logger),
		Send:  handlers.NewSendHandler(emailUC, smsUC, a.logger),
		UI:    handlers.NewUIHandler(fetchUC, savedUC, emailUC, smsUC, a.logger, retrievalDemo),
		Health: handlers.NewHealthHandler(db, broker, map[string]bool{
			"attom":              a.cfg.Attom.APIKey != "",
			a.cfg.Model.Provider: a.cfg.ModelAPIKey() != "",
			a.cfg.Email.Provider: !a.cfg.EmailDemo(),
			"twilio":             !a.cfg.SMSDemo(),
		}),
	}
}
