package marketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// v3EventsRevision pins the events API schema version.
const v3EventsRevision = "2024-10-15"

// TrackClient sends events via the legacy Track API, which carries the
// API token in the request body.
type TrackClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTrackClient creates a Track API client.
func NewTrackClient(baseURL, apiKey string, timeout time.Duration) *TrackClient {
	return &TrackClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendEvent posts the event to the Track API. The API answers "1" for
// accepted and "0" for rejected, both with HTTP 200.
func (c *TrackClient) SendEvent(ctx context.Context, event Event) error {
	payload := map[string]interface{}{
		"token": c.apiKey,
		"event": event.Name,
		"customer_properties": map[string]interface{}{
			"$email":        event.Profile.Email,
			"$first_name":   event.Profile.FirstName,
			"$last_name":    event.Profile.LastName,
			"$phone_number": event.Profile.Phone,
		},
		"properties": event.Properties,
		"time":       event.Time.Unix(),
	}

	status, body, err := post(ctx, c.httpClient, c.baseURL+"/api/track", payload, nil)
	if err != nil {
		return err
	}

	if status >= 400 || body == "0" {
		return fmt.Errorf("track API rejected event: status %d, response %q", status, body)
	}
	return nil
}

// EventsClient sends events via the v3 events API, authenticated with a
// private API key header.
type EventsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewEventsClient creates a v3 events API client.
func NewEventsClient(baseURL, apiKey string, timeout time.Duration) *EventsClient {
	return &EventsClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendEvent posts the event to the v3 events API.
func (c *EventsClient) SendEvent(ctx context.Context, event Event) error {
	profile := map[string]interface{}{
		"email": event.Profile.Email,
	}
	if event.Profile.FirstName != "" {
		profile["first_name"] = event.Profile.FirstName
	}
	if event.Profile.LastName != "" {
		profile["last_name"] = event.Profile.LastName
	}
	if event.Profile.Phone != "" {
		profile["phone_number"] = event.Profile.Phone
	}

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type": "event",
			"attributes": map[string]interface{}{
				"properties": event.Properties,
				"time":       event.Time.UTC().Format(time.RFC3339),
				"unique_id":  uuid.New().String(),
				"metric": map[string]interface{}{
					"data": map[string]interface{}{
						"type": "metric",
						"attributes": map[string]interface{}{
							"name": event.Name,
						},
					},
				},
				"profile": map[string]interface{}{
					"data": map[string]interface{}{
						"type":       "profile",
						"attributes": profile,
					},
				},
			},
		},
	}

	headers := map[string]string{
		"Authorization": "Klaviyo-API-Key " + c.apiKey,
		"revision":      v3EventsRevision,
	}

	status, body, err := post(ctx, c.httpClient, c.baseURL+"/api/events/", payload, headers)
	if err != nil {
		return err
	}

	if status >= 400 {
		return fmt.Errorf("events API rejected event: status %d, response %q", status, body)
	}
	return nil
}

// post marshals the payload, sends it, and returns status and body text.
func post(ctx context.Context, client *http.Client, url string, payload interface{}, headers map[string]string) (int, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, string(respBody), nil
}
