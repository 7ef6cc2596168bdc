// Package directory queries the external contact-directory service
// (Hunter-compatible API). Every operation is tolerant of failure: rate
// limits, bad credentials, and transport errors all collapse to an empty
// result so enrichment proceeds on whatever other sources succeeded.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"surge/internal/enrich/metrics"
	"surge/internal/enrich/models"
)

const (
	requestTimeout    = 15 * time.Second
	domainSearchLimit = 10
)

// PersonMatch is the result of a targeted single-person lookup.
type PersonMatch struct {
	Email         string
	Confidence    int
	Phone         string
	SocialProfile string
	Verified      models.Verification
}

// AccountStatus reports remaining search quota. Reading it consumes none.
type AccountStatus struct {
	SearchesUsed      int `json:"searches_used"`
	SearchesAvailable int `json:"searches_available"`
}

// Client talks to the directory service. A nil client or empty API key
// disables all lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New builds a Client. metrics may be nil.
func New(baseURL, apiKey string, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		metrics:    m,
		logger:     logger,
	}
}

// Enabled reports whether the client has a credential to use.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type verificationBody struct {
	Status string `json:"status"`
}

type domainSearchBody struct {
	Data struct {
		Emails []struct {
			FirstName    string           `json:"first_name"`
			LastName     string           `json:"last_name"`
			Value        string           `json:"value"`
			Position     string           `json:"position"`
			Confidence   int              `json:"confidence"`
			Seniority    string           `json:"seniority"`
			Department   string           `json:"department"`
			PhoneNumber  string           `json:"phone_number"`
			LinkedIn     string           `json:"linkedin"`
			Verification verificationBody `json:"verification"`
		} `json:"emails"`
	} `json:"data"`
}

// DomainSearch returns up to ten directory candidates for a domain. Any
// failure returns nil.
func (c *Client) DomainSearch(ctx context.Context, domain string) []models.Candidate {
	if !c.Enabled() || domain == "" {
		return nil
	}

	params := url.Values{
		"domain":  {domain},
		"api_key": {c.apiKey},
		"limit":   {fmt.Sprintf("%d", domainSearchLimit)},
	}
	body, ok := c.get(ctx, "domain-search", params)
	if !ok {
		return nil
	}

	var parsed domainSearchBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.DebugContext(ctx, "directory domain search returned malformed body", "domain", domain)
		return nil
	}

	out := make([]models.Candidate, 0, len(parsed.Data.Emails))
	for _, entry := range parsed.Data.Emails {
		name := strings.TrimSpace(strings.TrimSpace(entry.FirstName) + " " + strings.TrimSpace(entry.LastName))
		out = append(out, models.Candidate{
			Name:          name,
			Email:         strings.ToLower(entry.Value),
			Title:         entry.Position,
			Source:        models.SourceDirectory,
			Confidence:    entry.Confidence,
			Seniority:     parseSeniority(entry.Seniority),
			Department:    entry.Department,
			Phone:         entry.PhoneNumber,
			SocialProfile: entry.LinkedIn,
			Verified:      parseVerification(entry.Verification.Status),
		})
	}
	return out
}

type emailFinderBody struct {
	Data struct {
		Email        string           `json:"email"`
		Score        int              `json:"score"`
		PhoneNumber  string           `json:"phone_number"`
		LinkedIn     string           `json:"linkedin"`
		Verification verificationBody `json:"verification"`
	} `json:"data"`
}

// FindEmail performs one targeted person lookup. This consumes quota, so
// callers use it only as a backfill. Any failure returns ok=false.
func (c *Client) FindEmail(ctx context.Context, domain, firstName, lastName string) (PersonMatch, bool) {
	if !c.Enabled() || domain == "" || firstName == "" || lastName == "" {
		return PersonMatch{}, false
	}

	params := url.Values{
		"domain":     {domain},
		"first_name": {firstName},
		"last_name":  {lastName},
		"api_key":    {c.apiKey},
	}
	body, ok := c.get(ctx, "email-finder", params)
	if !ok {
		return PersonMatch{}, false
	}

	var parsed emailFinderBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Data.Email == "" {
		return PersonMatch{}, false
	}

	return PersonMatch{
		Email:         strings.ToLower(parsed.Data.Email),
		Confidence:    parsed.Data.Score,
		Phone:         parsed.Data.PhoneNumber,
		SocialProfile: parsed.Data.LinkedIn,
		Verified:      parseVerification(parsed.Data.Verification.Status),
	}, true
}

type accountBody struct {
	Data struct {
		Requests struct {
			Searches struct {
				Used      int `json:"used"`
				Available int `json:"available"`
			} `json:"searches"`
		} `json:"requests"`
	} `json:"data"`
}

// Account returns the remaining search quota. Unlike the lookup operations
// this surfaces an error, since its only caller is the ops endpoint.
func (c *Client) Account(ctx context.Context) (AccountStatus, error) {
	if !c.Enabled() {
		return AccountStatus{}, fmt.Errorf("directory service not configured")
	}

	params := url.Values{"api_key": {c.apiKey}}
	body, ok := c.get(ctx, "account", params)
	if !ok {
		return AccountStatus{}, fmt.Errorf("directory account request failed")
	}

	var parsed accountBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return AccountStatus{}, fmt.Errorf("parse directory account response: %w", err)
	}

	return AccountStatus{
		SearchesUsed:      parsed.Data.Requests.Searches.Used,
		SearchesAvailable: parsed.Data.Requests.Searches.Available,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncrementDirectoryCall(endpoint, "error")
		c.logger.DebugContext(ctx, "directory request failed", "endpoint", endpoint, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		c.metrics.IncrementDirectoryCall(endpoint, "rate_limited")
		c.logger.WarnContext(ctx, "directory rate limit reached", "endpoint", endpoint)
		return nil, false
	case http.StatusUnauthorized:
		c.metrics.IncrementDirectoryCall(endpoint, "unauthorized")
		c.logger.WarnContext(ctx, "directory api key rejected", "endpoint", endpoint)
		return nil, false
	default:
		c.metrics.IncrementDirectoryCall(endpoint, "error")
		c.logger.DebugContext(ctx, "directory returned non-200", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncrementDirectoryCall(endpoint, "error")
		return nil, false
	}
	c.metrics.IncrementDirectoryCall(endpoint, "ok")
	return body, true
}

func parseSeniority(s string) models.Seniority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "executive":
		return models.SeniorityExecutive
	case "senior":
		return models.SenioritySenior
	case "management":
		return models.SeniorityManagement
	default:
		return models.SeniorityUnknown
	}
}

func parseVerification(s string) models.Verification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid":
		return models.VerificationValid
	case "invalid":
		return models.VerificationInvalid
	default:
		return models.VerificationUnknown
	}
}
