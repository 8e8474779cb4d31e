package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

func postForm(path, zip string) *http.Request {
	form := url.Values{"zip_code": {zip}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUIIndexEmpty(t *testing.T) {
	app := newDemoApp(t)

	rec := httptest.NewRecorder()
	app.ui.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "Fetch 50 Hot Seller Leads")
	assert.Contains(t, body, "Send First 10 Emails")
	assert.Contains(t, body, "Send First 10 SMS")
	assert.Contains(t, body, "to get started")
}

func TestUIFetchAndSend(t *testing.T) {
	app := newDemoApp(t)

	rec := httptest.NewRecorder()
	app.ui.FetchLeads(rec, postForm("/ui/leads", "30301"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Found 50 leads in 30301")
	assert.Contains(t, body, "Leads (50)")
	assert.Contains(t, body, `<span class="badge ready">Ready</span>`)

	rec = httptest.NewRecorder()
	app.ui.SendEmails(rec, postForm("/ui/send-emails", "30301"))
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Sent 10 emails successfully")
	assert.Equal(t, 10, strings.Count(body, `<span class="badge sent">Sent</span>`))

	rec = httptest.NewRecorder()
	app.ui.Index(rec, httptest.NewRequest(http.MethodGet, "/?zip=30301", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Leads (50)")
}

func TestUIFetchInvalidZip(t *testing.T) {
	app := newDemoApp(t)

	rec := httptest.NewRecorder()
	app.ui.FetchLeads(rec, postForm("/ui/leads", "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Valid 5-digit ZIP code required")
}

func TestUISendWithoutLeads(t *testing.T) {
	app := newDemoApp(t)

	rec := httptest.NewRecorder()
	app.ui.SendSMS(rec, postForm("/ui/send-sms", "30301"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No unsent leads with SMS content found")
}

func TestLeadRows(t *testing.T) {
	body := "hi"
	rows := leadRows([]entity.Lead{
		{Address: "low", IntentScore: 30},
		{Address: "top", IntentScore: 85, EmailSent: true, SMSContent: &body},
		{Address: "mid", IntentScore: 65, EmailContent: &body},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "top", rows[0].Address)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, entity.TierHot, rows[0].Tier)
	assert.Equal(t, "Sent", rows[0].EmailStatus)
	assert.Equal(t, "Ready", rows[0].SMSStatus)

	assert.Equal(t, entity.TierWarm, rows[1].Tier)
	assert.Equal(t, "Ready", rows[1].EmailStatus)
	assert.Equal(t, "-", rows[1].SMSStatus)

	assert.Equal(t, entity.TierCold, rows[2].Tier)
	assert.Equal(t, 3, rows[2].Rank)
}

func TestUIFetchUpstreamFailure(t *testing.T) {
	fetch := fetchFunc(func(ctx context.Context, zip string) (*usecase.FetchLeadsOutput, error) {
		return nil, &usecase.TechnicalError{Code: usecase.CodeUpstream, Message: "upstream request failed: ATTOM API error: 500 Internal Server Error"}
	})
	h := NewUIHandler(fetch, nil, nil, nil, zap.NewNop(), false)

	rec := httptest.NewRecorder()
	h.FetchLeads(rec, postForm("/ui/leads", "30301"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ATTOM API error: 500")
	assert.NotContains(t, body, "Demo mode")
}
