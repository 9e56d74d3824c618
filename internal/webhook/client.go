package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nordsym/guldkant-api/internal/config"
	"github.com/nordsym/guldkant-api/internal/domain"
	"go.uber.org/zap"
)

// Client talks to the external automation endpoints that own persistence
// and proposal dispatch. The API itself keeps no state; every read and
// write goes through here.
type Client struct {
	cfg        *config.WebhookConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a webhook client with the configured per-call timeout
func NewClient(cfg *config.WebhookConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:     logger,
	}
}

// StatusError is a non-2xx webhook response. Message carries the upstream
// body's message field when one was present.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned %d", e.Endpoint, e.StatusCode)
}

type quotesEnvelope struct {
	Quotes []*domain.Quote `json:"quotes"`
}

// FetchQuotes retrieves the full quote collection. A response without a
// quotes field is an empty collection, not an error; null entries are kept
// as nil and filtered downstream.
func (c *Client) FetchQuotes(ctx context.Context) ([]*domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.QuotesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building quotes request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Endpoint: "quotes", StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	var env quotesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding quotes response: %w", err)
	}

	c.logger.Debug("Fetched quote collection", zap.Int("count", len(env.Quotes)))
	return env.Quotes, nil
}

// SaveQuote persists a quote through the intake endpoint and returns the
// stored record. The store assigns a durable id to quotes sent with a
// temporary one.
func (c *Client) SaveQuote(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encoding quote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.IntakeURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("saving quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Endpoint: "intake", StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	// The intake endpoint echoes the persisted record. An empty or
	// non-JSON body falls back to what we sent.
	saved := q.Clone()
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(bytes.TrimSpace(data)) > 0 {
		var returned domain.Quote
		if jsonErr := json.Unmarshal(data, &returned); jsonErr == nil && returned.ID != "" {
			saved = returned
		}
	}

	c.logger.Info("Quote saved via intake webhook",
		zap.String("quote_id", saved.ID),
		zap.String("status", string(saved.Status)),
	)
	return &saved, nil
}

// DispatchProposal asks the automation flow to email the proposal for an
// already-persisted quote
func (c *Client) DispatchProposal(ctx context.Context, quoteID string) error {
	body, err := json.Marshal(map[string]string{"offerId": quoteID})
	if err != nil {
		return fmt.Errorf("encoding dispatch payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DispatchURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dispatching proposal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Endpoint: "dispatch", StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	c.logger.Info("Proposal dispatch triggered", zap.String("quote_id", quoteID))
	return nil
}

// readMessage pulls a human-readable message out of an error response body.
// Automation flows answer with {"message": "..."} on failure, but plain
// text bodies occur too.
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(data))
}
