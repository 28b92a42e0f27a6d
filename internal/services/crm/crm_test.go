package crm

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
)

func TestForward_SendsRecordAsJSON(t *testing.T) {
	var gotBody map[string]interface{}
	var gotContentType, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = io.WriteString(w, "accepted")
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Forward(context.Background(), map[string]interface{}{
		"email":      "a@b.com",
		"recordType": "lead",
	})

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "accepted", result.Body)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Course-Booking-Webhook/1.0", gotUserAgent)
	assert.Equal(t, "a@b.com", gotBody["email"])
	assert.Equal(t, "lead", gotBody["recordType"])
}

func TestForward_CapturesFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream exploded")
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Forward(context.Background(), map[string]interface{}{"email": "a@b.com"})

	// A non-2xx reply is a result, not an error: the caller passes the
	// status and body through to its own client.
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	assert.Equal(t, "upstream exploded", result.Body)
}

func TestForward_NetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/nope", time.Second)

	result, err := client.Forward(context.Background(), map[string]interface{}{"email": "a@b.com"})

	require.Error(t, err)
	assert.Nil(t, result)
}
