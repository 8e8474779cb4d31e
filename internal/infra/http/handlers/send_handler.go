package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

type OutreachSender interface {
	Execute(ctx context.Context, input usecase.SendOutreachInput) (*usecase.SendOutreachOutput, error)
}

type SendHandler struct {
	SendEmailsUC OutreachSender
	SendSMSUC    OutreachSender
	Logger       *zap.Logger
}

func NewSendHandler(emails, sms OutreachSender, logger *zap.Logger) *SendHandler {
	return &SendHandler{
		SendEmailsUC: emails,
		SendSMSUC:    sms,
		Logger:       logger,
	}
}

// SendEmails (POST /send-emails)
func (h *SendHandler) SendEmails(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.SendEmailsUC, "email")
}

// SendSMS (POST /send-sms)
func (h *SendHandler) SendSMS(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.SendSMSUC, "sms")
}

func (h *SendHandler) send(w http.ResponseWriter, r *http.Request, uc OutreachSender, channel string) {
	var input usecase.SendOutreachInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := uc.Execute(r.Context(), input)
	if err != nil {
		if !usecase.IsDomainError(err) {
			h.Logger.Error("outreach sending error", zap.String("channel", channel), zap.Error(err))
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
