package twilio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	twiliosdk "github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

const defaultBaseURL = "https://api.twilio.com"

type Client struct {
	accountSID string
	from       string
	rest       *twiliosdk.RestClient
}

// NewClient builds a Messages client. A baseURL other than the public API
// host (a mock or a proxy) receives the same requests.
func NewClient(accountSID, authToken, from, baseURL string) (*Client, error) {
	if accountSID == "" || authToken == "" {
		return nil, fmt.Errorf("%w: Twilio credentials not configured", entity.ErrConfigurationMissing)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: TWILIO_PHONE_NUMBER is not configured", entity.ErrConfigurationMissing)
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	if baseURL = strings.TrimRight(baseURL, "/"); baseURL != "" && baseURL != defaultBaseURL {
		target, err := url.Parse(baseURL)
		if err != nil || target.Host == "" {
			return nil, fmt.Errorf("%w: invalid TWILIO_BASE_URL %q", entity.ErrConfigurationMissing, baseURL)
		}
		httpClient.Transport = &hostRewrite{target: target, next: http.DefaultTransport}
	}

	base := &client.Client{
		Credentials: client.NewCredentials(accountSID, authToken),
		HTTPClient:  httpClient,
	}
	base.SetAccountSid(accountSID)

	return &Client{
		accountSID: accountSID,
		from:       from,
		rest: twiliosdk.NewRestClientWithParams(twiliosdk.ClientParams{
			Username: accountSID,
			Password: authToken,
			Client:   base,
		}),
	}, nil
}

// Send creates a message and returns its SID.
func (c *Client) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &api.CreateMessageParams{}
	params.SetPathAccountSid(c.accountSID)
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(body)

	msg, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("%w: twilio: %v", entity.ErrUpstreamRequestFailed, err)
	}
	if msg.Sid == nil {
		return "", nil
	}
	return *msg.Sid, nil
}

// hostRewrite sends every request to target, keeping path and query.
type hostRewrite struct {
	target *url.URL
	next   http.RoundTripper
}

func (h *hostRewrite) RoundTrip(r *http.Request) (*http.Response, error) {
	out := r.Clone(r.Context())
	out.URL.Scheme = h.target.Scheme
	out.URL.Host = h.target.Host
	out.Host = h.target.Host
	return h.next.RoundTrip(out)
}
