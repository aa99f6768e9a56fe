package external

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendWelcome(t *testing.T) {
	var received SendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(SendMessageResponse{
			Success:   true,
			MessageID: "msg-42",
			Status:    "queued",
		})
	}))
	defer server.Close()

	client := NewMailerClient(MailerConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Sender:  "noreply@atelier.example",
	})

	resp, err := client.SendWelcome("member@example.com", "Aigerim", "Spring Showcase", "2026-09-12", "19:00")
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "msg-42", resp.MessageID)

	assert.Equal(t, "noreply@atelier.example", received.From)
	assert.Equal(t, "member@example.com", received.To)
	assert.Equal(t, "welcome", received.Template)
	assert.Equal(t, "Aigerim", received.Vars["member_name"])
	assert.Equal(t, "Spring Showcase", received.Vars["event_title"])
}

func TestSendWelcomeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewMailerClient(MailerConfig{BaseURL: server.URL, APIKey: "test-key"})

	resp, err := client.SendWelcome("member@example.com", "Aigerim", "Spring Showcase", "2026-09-12", "19:00")
	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "502")
}
