package sendgrid

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	sg "github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/infra/mail"
)

const sendEndpoint = "/v3/mail/send"

type Client struct {
	host   string
	apiKey string
	from   *sgmail.Email
	rest   *rest.Client
}

func NewClient(apiKey, baseURL, from string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: SENDGRID_API_KEY is not configured", entity.ErrConfigurationMissing)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: SENDGRID_FROM_EMAIL is not configured", entity.ErrConfigurationMissing)
	}
	return &Client{
		host:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		from:   sgmail.NewEmail("", from),
		rest:   &rest.Client{HTTPClient: &http.Client{Timeout: 15 * time.Second}},
	}, nil
}

// Send delivers a v3 mail carrying a plain text and an HTML part.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	email := mail.OutreachEmail{To: to, Subject: subject, Text: body}
	msg := sgmail.NewSingleEmail(c.from, email.Subject, sgmail.NewEmail("", email.To), email.Text, email.HTML())

	req := sg.GetRequest(c.apiKey, sendEndpoint, c.host)
	req.Method = rest.Post
	req.Body = sgmail.GetRequestBody(msg)

	resp, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: sendgrid request: %v", entity.ErrUpstreamRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: sendgrid returned status %d: %s", entity.ErrUpstreamRequestFailed, resp.StatusCode, truncate(strings.TrimSpace(resp.Body), 512))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
