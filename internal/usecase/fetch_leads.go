package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/outreach"
)

const (
	ModeDemo = "demo"
	ModeLive = "live"
)

type FetchLeadsUseCase struct {
	Source      PropertySource
	Generator   OutreachGenerator
	Repo        LeadRepository
	Logger      *zap.Logger
	Metrics     Metrics
	Demo        bool
	Concurrency int

	newRand func() *rand.Rand
}

func NewFetchLeadsUseCase(
	source PropertySource,
	generator OutreachGenerator,
	repo LeadRepository,
	logger *zap.Logger,
	metrics Metrics,
	demo bool,
	concurrency int,
) *FetchLeadsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &FetchLeadsUseCase{
		Source:      source,
		Generator:   generator,
		Repo:        repo,
		Logger:      logger,
		Metrics:     metricsOrNop(metrics),
		Demo:        demo,
		Concurrency: concurrency,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Execute builds the lead list for zip, persists it on a best-effort basis
// and returns it. Every outreach generation has finished when it returns.
func (uc *FetchLeadsUseCase) Execute(ctx context.Context, zip string) (*FetchLeadsOutput, error) {
	if err := ValidateZipCode(zip); err != nil {
		return nil, err
	}

	var leads []entity.Lead
	mode := ModeLive
	if uc.Demo {
		mode = ModeDemo
		leads = DemoLeads(zip, uc.newRand())
	} else {
		props, err := uc.Source.FetchByZip(ctx, zip)
		if err != nil {
			uc.Metrics.IntegrationError("attom")
			uc.Logger.Error("property lookup failed", zap.String("zip", zip), zap.Error(err))
			return nil, technicalError(err)
		}
		leads = uc.buildLeads(ctx, zip, props)
	}

	uc.persist(ctx, zip, leads)
	uc.Metrics.LeadsGenerated(mode, len(leads))
	uc.Logger.Info("leads generated",
		zap.String("zip", zip),
		zap.String("mode", mode),
		zap.Int("count", len(leads)),
	)

	return &FetchLeadsOutput{Leads: leads, Count: len(leads), Demo: uc.Demo}, nil
}

func (uc *FetchLeadsUseCase) buildLeads(ctx context.Context, zip string, props []entity.Property) []entity.Lead {
	leads := make([]entity.Lead, len(props))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.Concurrency)
	for i, p := range props {
		g.Go(func() error {
			var email, sms *string
			msgs, err := uc.Generator.Generate(gctx, outreach.Facts{
				OwnerName:     p.OwnerName,
				Address:       p.Address,
				EquityPercent: p.EquityPercent,
				YearsOwned:    p.YearsOwned,
			})
			if err != nil {
				// the lead is kept without messages
				uc.Metrics.IntegrationError("llm")
				uc.Logger.Warn("outreach generation failed", zap.String("address", p.Address), zap.Error(err))
			} else {
				email = entity.StringPtr(msgs.EmailContent)
				sms = entity.StringPtr(msgs.SMSContent)
			}
			leads[i] = entity.NewLead(zip, p, email, sms)
			return nil
		})
	}
	_ = g.Wait()

	return leads
}

func (uc *FetchLeadsUseCase) persist(ctx context.Context, zip string, leads []entity.Lead) {
	if len(leads) == 0 || uc.Repo == nil {
		return
	}
	if err := uc.Repo.InsertBatch(ctx, leads); err != nil {
		uc.Logger.Error("leads returned but not persisted", zap.String("zip", zip), zap.Error(err))
	}
}

type ListSavedLeadsUseCase struct {
	Repo LeadRepository
}

func NewListSavedLeadsUseCase(repo LeadRepository) *ListSavedLeadsUseCase {
	return &ListSavedLeadsUseCase{Repo: repo}
}

func (uc *ListSavedLeadsUseCase) Execute(ctx context.Context, zip string) (*SavedLeadsOutput, error) {
	if err := ValidateZipCode(zip); err != nil {
		return nil, err
	}
	leads, err := uc.Repo.ListByZip(ctx, zip)
	if err != nil {
		return nil, &TechnicalError{Code: CodePersistence, Message: "Failed to fetch leads", Err: err}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return &SavedLeadsOutput{Leads: leads, Count: len(leads)}, nil
}

func technicalError(err error) *TechnicalError {
	code := CodeUpstream
	switch {
	case errors.Is(err, entity.ErrConfigurationMissing):
		code = CodeConfigurationMissing
	case errors.Is(err, entity.ErrPersistenceFailed):
		code = CodePersistence
	}
	return &TechnicalError{Code: code, Message: err.Error(), Err: err}
}
