package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type leadRow struct {
	Rank          int
	Address       string
	OwnerName     string
	EquityPercent int
	YearsOwned    int
	IntentScore   int
	Tier          entity.Tier
	EmailStatus   string
	SMSStatus     string
}

type pageData struct {
	Zip   string
	Leads []leadRow
	Flash string
	Error string
	Demo  bool
}

// UIHandler serves the operator page. Forms post back and the page is
// rendered on the server.
type UIHandler struct {
	FetchLeadsUC LeadFetcher
	SavedLeadsUC SavedLeadsLister
	SendEmailsUC OutreachSender
	SendSMSUC    OutreachSender
	Logger       *zap.Logger
	Demo         bool
}

func NewUIHandler(fetch LeadFetcher, saved SavedLeadsLister, emails, sms OutreachSender, logger *zap.Logger, demo bool) *UIHandler {
	return &UIHandler{
		FetchLeadsUC: fetch,
		SavedLeadsUC: saved,
		SendEmailsUC: emails,
		SendSMSUC:    sms,
		Logger:       logger,
		Demo:         demo,
	}
}

// Index (GET /)
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{Zip: strings.TrimSpace(r.URL.Query().Get("zip")), Demo: h.Demo}
	status := http.StatusOK
	if data.Zip != "" {
		status = h.loadSaved(r, &data)
	}
	h.render(w, status, data)
}

// FetchLeads (POST /ui/leads)
func (h *UIHandler) FetchLeads(w http.ResponseWriter, r *http.Request) {
	data := pageData{Zip: formZip(r), Demo: h.Demo}

	output, err := h.FetchLeadsUC.Execute(r.Context(), data.Zip)
	if err != nil {
		status, _ := statusFor(err)
		if status >= 500 {
			h.Logger.Error("lead generation error", zap.String("zip", data.Zip), zap.Error(err))
		}
		data.Error = err.Error()
		h.render(w, status, data)
		return
	}

	data.Leads = leadRows(output.Leads)
	data.Demo = output.Demo
	data.Flash = fmt.Sprintf("Found %d leads in %s", output.Count, data.Zip)
	h.render(w, http.StatusOK, data)
}

// SendEmails (POST /ui/send-emails)
func (h *UIHandler) SendEmails(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.SendEmailsUC, "emails")
}

// SendSMS (POST /ui/send-sms)
func (h *UIHandler) SendSMS(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.SendSMSUC, "SMS messages")
}

func (h *UIHandler) send(w http.ResponseWriter, r *http.Request, uc OutreachSender, noun string) {
	data := pageData{Zip: formZip(r), Demo: h.Demo}

	status := http.StatusOK
	output, err := uc.Execute(r.Context(), usecase.SendOutreachInput{ZipCode: data.Zip})
	if err != nil {
		status, _ = statusFor(err)
		if status >= 500 {
			h.Logger.Error("outreach sending error", zap.String("zip", data.Zip), zap.Error(err))
		}
		data.Error = err.Error()
	} else {
		data.Flash = fmt.Sprintf("Sent %d %s successfully", output.Sent, noun)
		if output.Sent < output.Total {
			data.Flash += fmt.Sprintf(" (%d failed)", output.Total-output.Sent)
		}
		data.Demo = output.Demo
	}

	if usecase.ValidateZipCode(data.Zip) == nil {
		if s := h.loadSaved(r, &data); status == http.StatusOK {
			status = s
		}
	}
	h.render(w, status, data)
}

func (h *UIHandler) loadSaved(r *http.Request, data *pageData) int {
	saved, err := h.SavedLeadsUC.Execute(r.Context(), data.Zip)
	if err != nil {
		status, _ := statusFor(err)
		data.Error = err.Error()
		return status
	}
	data.Leads = leadRows(saved.Leads)
	return http.StatusOK
}

func (h *UIHandler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.Logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func formZip(r *http.Request) string {
	return strings.TrimSpace(r.FormValue("zip_code"))
}

// leadRows orders leads by score, highest first, and derives the display
// columns.
func leadRows(leads []entity.Lead) []leadRow {
	sorted := make([]entity.Lead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IntentScore > sorted[j].IntentScore
	})

	rows := make([]leadRow, 0, len(sorted))
	for i := range sorted {
		l := &sorted[i]
		rows = append(rows, leadRow{
			Rank:          i + 1,
			Address:       l.Address,
			OwnerName:     l.OwnerName,
			EquityPercent: l.EquityPercent,
			YearsOwned:    l.YearsOwned,
			IntentScore:   l.IntentScore,
			Tier:          entity.IntentTier(l.IntentScore),
			EmailStatus:   deliveryStatus(l, entity.ChannelEmail),
			SMSStatus:     deliveryStatus(l, entity.ChannelSMS),
		})
	}
	return rows
}

func deliveryStatus(l *entity.Lead, ch entity.Channel) string {
	switch {
	case l.Sent(ch):
		return "Sent"
	case l.Content(ch) != nil:
		return "Ready"
	default:
		return "-"
	}
}
