package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAugmentsDetails(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/onboarding/track-action", r.URL.Path)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		received <- in
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Track("parent@example.com", "cast_vote", "/vote", map[string]any{"product_voted": "Honey Brand A"})

	select {
	case in := <-received:
		assert.Equal(t, "parent@example.com", in["email"])
		assert.Equal(t, "cast_vote", in["action"])

		details, ok := in["details"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Honey Brand A", details["product_voted"])
		assert.Equal(t, "/vote", details["page"])
		assert.NotEmpty(t, details["session_id"])
		_, err := time.Parse(time.RFC3339, details["timestamp"].(string))
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("tracked action never reached the server")
	}
}

func TestTrackSkipsAnonymousUsers(t *testing.T) {
	received := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Track("", "view_homepage", "/", nil)

	select {
	case <-received:
		t.Fatal("anonymous action must not be sent")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTrackSwallowsDeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close() // refuse connections entirely

	c := NewClient(srv.URL)
	// Must not panic or block the caller.
	c.Track("parent@example.com", "view_homepage", "/", nil)
}

func TestSessionIDIsValidUUID(t *testing.T) {
	_, err := uuid.Parse(sessionID)
	assert.NoError(t, err)
}
