// Package marketing emits customer events to the marketing-automation
// API. The event payload format has changed more than once upstream, so
// the handler depends only on EventSender and the concrete API shape
// lives in one swappable adapter chosen at configuration time.
package marketing

import (
	"context"
	"time"

	appConfig "course-booking-functions/internal/config"
)

// Profile identifies the customer an event belongs to.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// Event is a named customer event with free-form properties.
type Event struct {
	Name       string
	Profile    Profile
	Properties map[string]interface{}
	Time       time.Time
}

// EventSender sends a customer event to the marketing API.
type EventSender interface {
	SendEvent(ctx context.Context, event Event) error
}

// New returns the EventSender for the configured API version, or nil
// when no API key is configured (the caller skips the side effect).
func New(cfg *appConfig.Config) EventSender {
	if cfg.MarketingAPIKey == "" {
		return nil
	}

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	if cfg.MarketingAPIVersion == appConfig.MarketingAPITrack {
		return NewTrackClient(cfg.MarketingAPIBaseURL, cfg.MarketingAPIKey, timeout)
	}
	return NewEventsClient(cfg.MarketingAPIBaseURL, cfg.MarketingAPIKey, timeout)
}
