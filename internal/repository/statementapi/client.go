// Package statementapi implements domain.StatementProvider against the
// upstream account-statement service.
package statementapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds one upstream statement call.
const DefaultTimeout = 15 * time.Second

// Client calls the upstream account-statement API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a statement API client for the given endpoint and token.
func NewClient(endpoint, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		endpoint:   endpoint,
		token:      token,
	}
}

// request is the upstream wire request for a statement lookup.
type request struct {
	CreditID   int    `json:"idCredito"`
	CutoffDate string `json:"fechaCorte"`
}

// response is the upstream wire envelope. Message carries the upstream error
// text as a one-element list when the lookup fails.
type response struct {
	Statement *domain.RawStatement `json:"estadoCuenta"`
	Message   []string             `json:"mensaje"`
}

// Fetch retrieves the raw statement for a credit as of the cutoff date.
// Any upstream failure (transport, non-200, missing statement) surfaces as
// domain.ErrStatementUnavailable with the upstream message attached when
// available.
func (c *Client) Fetch(ctx context.Context, creditID int, cutoffDate string) (*domain.RawStatement, error) {
	body, err := json.Marshal(request{CreditID: creditID, CutoffDate: cutoffDate})
	if err != nil {
		return nil, fmt.Errorf("marshal statement request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build statement request: %w", err)
	}
	req.Header.Set("Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Int("credit_id", creditID).Msg("Statement API call failed")
		return nil, fmt.Errorf("%w: upstream unreachable", domain.ErrStatementUnavailable)
	}
	defer res.Body.Close()

	var envelope response
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		log.Debug().Err(err).Int("credit_id", creditID).Msg("Statement API returned invalid JSON")
		return nil, fmt.Errorf("%w: invalid response", domain.ErrStatementUnavailable)
	}

	if res.StatusCode != http.StatusOK || envelope.Statement == nil {
		msg := "no data for this credit"
		if len(envelope.Message) > 0 && envelope.Message[0] != "" {
			msg = envelope.Message[0]
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrStatementUnavailable, msg)
	}

	return envelope.Statement, nil
}
