// Package workflow implements the HTTP client for the external
// natural-language-to-data workflow engine (an n8n-style webhook).
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Client POSTs {schema, query} JSON to the webhook and maps the tabular
// reply. Single shot: no retries, no backoff; the caller owns the fallback.
type Client struct {
	url  string
	http *http.Client
	log  zerolog.Logger
}

func NewClient(url string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type generateRequest struct {
	Schema string `json:"schema"`
	Query  string `json:"query"`
}

type generateResponse struct {
	SQLQuery  string          `json:"sql_query"`
	ChartType string          `json:"chart_type"`
	XAxis     string          `json:"x_axis"`
	YAxis     string          `json:"y_axis"`
	Cols      []domain.Column `json:"cols"`
	Rows      [][]any         `json:"rows"`
}

func (c *Client) Generate(ctx context.Context, req domain.VisualizationRequest) (*domain.VisualizationResult, error) {
	if c.url == "" {
		return nil, domain.ErrWorkflowUnavailable
	}

	body, err := json.Marshal(generateRequest{Schema: req.Schema, Query: req.Query})
	if err != nil {
		return nil, fmt.Errorf("workflow marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("workflow request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("workflow call: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", res.StatusCode).Msg("workflow webhook returned non-200")
		return nil, fmt.Errorf("workflow status %d: %w", res.StatusCode, domain.ErrWorkflowUnavailable)
	}

	var payload generateResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("workflow decode: %w", err)
	}

	return &domain.VisualizationResult{
		SQLQuery:  payload.SQLQuery,
		ChartType: payload.ChartType,
		XAxis:     payload.XAxis,
		YAxis:     payload.YAxis,
		Cols:      payload.Cols,
		Rows:      payload.Rows,
	}, nil
}
