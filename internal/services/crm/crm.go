// Package crm forwards booking records to the CRM automation webhook.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Course-Booking-Webhook/1.0"

// Client posts booking records to the CRM automation webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a new CRM webhook client.
func NewClient(webhookURL string, timeout time.Duration) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Result captures the CRM's reply. The body is kept as raw text so it
// can pass through to the caller verbatim, whatever the status was.
type Result struct {
	StatusCode int
	Body       string
}

// Success reports whether the CRM accepted the record.
func (r *Result) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Forward sends the record as JSON to the CRM webhook and captures the
// response text regardless of status.
func (c *Client) Forward(ctx context.Context, record map[string]interface{}) (*Result, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}, nil
}
