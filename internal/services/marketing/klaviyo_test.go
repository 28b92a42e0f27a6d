package marketing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "course-booking-functions/internal/config"
)

func placedOrderEvent() Event {
	return Event{
		Name: "Placed Order",
		Profile: Profile{
			Email:     "a@b.com",
			FirstName: "Jo",
			LastName:  "Bloggs",
			Phone:     "07700900000",
		},
		Properties: map[string]interface{}{
			"booking_reference": "BK1",
			"course_name":       "Door Supervisor Training",
		},
		Time: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTrackClient_SendEvent(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = io.WriteString(w, "1")
	}))
	defer server.Close()

	client := NewTrackClient(server.URL, "pk_test", 5*time.Second)
	err := client.SendEvent(context.Background(), placedOrderEvent())

	require.NoError(t, err)
	assert.Equal(t, "/api/track", gotPath)
	assert.Equal(t, "pk_test", gotBody["token"])
	assert.Equal(t, "Placed Order", gotBody["event"])

	customer := gotBody["customer_properties"].(map[string]interface{})
	assert.Equal(t, "a@b.com", customer["$email"])
	assert.Equal(t, "Jo", customer["$first_name"])

	props := gotBody["properties"].(map[string]interface{})
	assert.Equal(t, "BK1", props["booking_reference"])
	assert.Equal(t, float64(placedOrderEvent().Time.Unix()), gotBody["time"])
}

func TestTrackClient_RejectedEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The Track API signals rejection with body "0" and HTTP 200.
		_, _ = io.WriteString(w, "0")
	}))
	defer server.Close()

	client := NewTrackClient(server.URL, "pk_test", 5*time.Second)
	err := client.SendEvent(context.Background(), placedOrderEvent())

	assert.Error(t, err)
}

func TestEventsClient_SendEvent(t *testing.T) {
	var gotPath, gotAuth, gotRevision string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRevision = r.Header.Get("revision")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewEventsClient(server.URL, "pk_test", 5*time.Second)
	err := client.SendEvent(context.Background(), placedOrderEvent())

	require.NoError(t, err)
	assert.Equal(t, "/api/events/", gotPath)
	assert.Equal(t, "Klaviyo-API-Key pk_test", gotAuth)
	assert.NotEmpty(t, gotRevision)

	data := gotBody["data"].(map[string]interface{})
	attrs := data["attributes"].(map[string]interface{})
	assert.NotEmpty(t, attrs["unique_id"])
	assert.Equal(t, "2026-09-01T12:00:00Z", attrs["time"])

	metric := attrs["metric"].(map[string]interface{})["data"].(map[string]interface{})
	assert.Equal(t, "Placed Order", metric["attributes"].(map[string]interface{})["name"])

	profile := attrs["profile"].(map[string]interface{})["data"].(map[string]interface{})
	assert.Equal(t, "a@b.com", profile["attributes"].(map[string]interface{})["email"])
}

func TestEventsClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errors":[{"detail":"bad profile"}]}`)
	}))
	defer server.Close()

	client := NewEventsClient(server.URL, "pk_test", 5*time.Second)
	err := client.SendEvent(context.Background(), placedOrderEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestNew_SelectsAdapterByConfig(t *testing.T) {
	disabled := New(&appConfig.Config{MarketingAPIVersion: appConfig.MarketingAPITrack})
	assert.Nil(t, disabled)

	track := New(&appConfig.Config{
		MarketingAPIKey:     "pk",
		MarketingAPIBaseURL: "https://a.klaviyo.com",
		MarketingAPIVersion: appConfig.MarketingAPITrack,
	})
	assert.IsType(t, &TrackClient{}, track)

	v3 := New(&appConfig.Config{
		MarketingAPIKey:     "pk",
		MarketingAPIBaseURL: "https://a.klaviyo.com",
		MarketingAPIVersion: appConfig.MarketingAPIV3,
	})
	assert.IsType(t, &EventsClient{}, v3)
}
