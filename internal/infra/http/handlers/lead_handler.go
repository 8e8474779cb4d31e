package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

type LeadFetcher interface {
	Execute(ctx context.Context, zip string) (*usecase.FetchLeadsOutput, error)
}

type SavedLeadsLister interface {
	Execute(ctx context.Context, zip string) (*usecase.SavedLeadsOutput, error)
}

type LeadHandler struct {
	FetchLeadsUC LeadFetcher
	SavedLeadsUC SavedLeadsLister
	Logger       *zap.Logger
}

func NewLeadHandler(fetch LeadFetcher, saved SavedLeadsLister, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		FetchLeadsUC: fetch,
		SavedLeadsUC: saved,
		Logger:       logger,
	}
}

// GetLeads (GET /leads?zip=)
func (h *LeadHandler) GetLeads(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")

	output, err := h.FetchLeadsUC.Execute(r.Context(), zip)
	if err != nil {
		if !usecase.IsDomainError(err) {
			h.Logger.Error("lead generation error", zap.String("zip", zip), zap.Error(err))
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// GetSavedLeads (GET /leads/saved?zip=)
func (h *LeadHandler) GetSavedLeads(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")

	output, err := h.SavedLeadsUC.Execute(r.Context(), zip)
	if err != nil {
		if !usecase.IsDomainError(err) {
			h.Logger.Error("failed to list saved leads", zap.String("zip", zip), zap.Error(err))
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
