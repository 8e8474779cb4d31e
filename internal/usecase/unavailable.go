package usecase

import (
	"context"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/outreach"
)

// The Unavailable adapters stand in for a provider that could not be built
// at startup. They fail every call with the construction error.

type UnavailableSource struct{ Err error }

func (u UnavailableSource) FetchByZip(context.Context, string) ([]entity.Property, error) {
	return nil, u.Err
}

type UnavailableGenerator struct{ Err error }

func (u UnavailableGenerator) Generate(context.Context, outreach.Facts) (outreach.Messages, error) {
	return outreach.Messages{}, u.Err
}

type UnavailableEmailSender struct{ Err error }

func (u UnavailableEmailSender) Send(context.Context, string, string, string) error {
	return u.Err
}

type UnavailableSMSSender struct{ Err error }

func (u UnavailableSMSSender) Send(context.Context, string, string) (string, error) {
	return "", u.Err
}

type nopMetrics struct{}

func (nopMetrics) LeadsGenerated(string, int) {}
func (nopMetrics) OutreachAttempt(string, string) {}
func (nopMetrics) IntegrationError(string) {}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
