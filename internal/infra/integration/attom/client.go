package attom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

const (
	PageSize = 50

	minEquityPercent = 50.0
	minYearsOwned    = 7
	// used when the record carries no sale date
	defaultYearsOwned = 10
)

var yearLength = time.Duration(365.25 * 24 * float64(time.Hour))

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

// NewClient fails with entity.ErrConfigurationMissing when no API key is set.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: ATTOM_API_KEY is not configured", entity.ErrConfigurationMissing)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}, nil
}

// FetchByZip returns the owners in zip with more than 50% equity and at
// least 7 years of tenure, capped at 50 entries.
func (c *Client) FetchByZip(ctx context.Context, zip string) ([]entity.Property, error) {
	q := url.Values{}
	q.Set("postalcode", zip)
	q.Set("pagesize", fmt.Sprint(PageSize))
	endpoint := fmt.Sprintf("%s/propertyapi/v1.0.0/property/expandedprofile?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: attom request: %v", entity.ErrUpstreamRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: ATTOM API error: %d %s", entity.ErrUpstreamRequestFailed, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload expandedProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode attom response: %v", entity.ErrUpstreamRequestFailed, err)
	}

	now := c.now()
	props := make([]entity.Property, 0, len(payload.Property))
	for _, p := range payload.Property {
		equity := equityPercent(p)
		if equity <= minEquityPercent {
			continue
		}
		years, ok := yearsOwned(p.Sale.SaleTransDate, now)
		if !ok || years < minYearsOwned {
			continue
		}
		props = append(props, entity.Property{
			Address:       formatAddress(p),
			OwnerName:     formatOwner(p.Assessment.Owner.Owner1.First, p.Assessment.Owner.Owner1.Last),
			EquityPercent: storedEquity(equity),
			YearsOwned:    years,
		})
		if len(props) == PageSize {
			break
		}
	}
	return props, nil
}

func equityPercent(p property) float64 {
	market := float64(p.Assessment.Market.MktTotalValue)
	if market <= 0 {
		return 0
	}
	mortgage := float64(p.Assessment.Mortgage.Amount.FirstConcurrent)
	return (market - mortgage) / market * 100
}

// storedEquity rounds to a whole percent within [0, 100]. A negative
// mortgage amount would otherwise push it past 100.
func storedEquity(equity float64) int {
	return int(math.Round(math.Max(0, math.Min(100, equity))))
}

var saleDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006/01/02", "01/02/2006"}

// yearsOwned reports false for a sale date that is present but unreadable.
func yearsOwned(saleDate string, now time.Time) (int, bool) {
	saleDate = strings.TrimSpace(saleDate)
	if saleDate == "" {
		return defaultYearsOwned, true
	}
	for _, layout := range saleDateLayouts {
		t, err := time.Parse(layout, saleDate)
		if err != nil {
			continue
		}
		years := int(math.Floor(float64(now.Sub(t)) / float64(yearLength)))
		if years < 0 {
			years = 0
		}
		return years, true
	}
	return 0, false
}

func formatAddress(p property) string {
	first := p.Address.OneLine
	if first == "" {
		first = p.Address.Line1
	}
	var parts []string
	for _, s := range []string{first, p.Address.Locality, p.Address.CountrySubd, p.Address.Postal1} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func formatOwner(first, last string) string {
	if last == "" {
		last = "Owner"
	}
	name := strings.TrimSpace(last + ", " + first)
	name = strings.TrimPrefix(name, ",")
	name = strings.TrimSuffix(name, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return "Property Owner"
	}
	return name
}
