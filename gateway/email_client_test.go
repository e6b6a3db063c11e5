package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/entity"
)

func TestEmailClient_Send(t *testing.T) {
	var captured struct {
		auth string
		body map[string]any
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)

		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "email-1"}`))
	}))
	defer srv.Close()

	client := NewEmailClient(srv.URL, "api-key-1", "Tickets <noreply@example.com>")

	emailID, err := client.Send(context.Background(), EmailMessage{
		To:      "a@b.io",
		Subject: "Your ticket",
		HTML:    "<p>hi</p>",
		Attachments: []EmailAttachment{
			{Filename: "qr.png", Content: []byte{1, 2, 3}, CID: "qr-cid"},
			{Filename: "ticket.pdf", Content: []byte{4, 5, 6}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "email-1", emailID)

	assert.Equal(t, "Bearer api-key-1", captured.auth)
	assert.Equal(t, "Tickets <noreply@example.com>", captured.body["from"])
	assert.Equal(t, "a@b.io", captured.body["to"])

	attachments := captured.body["attachments"].([]any)
	require.Len(t, attachments, 2)

	qr := attachments[0].(map[string]any)
	assert.Equal(t, "qr.png", qr["filename"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), qr["content"])
	assert.Equal(t, "qr-cid", qr["cid"])

	pdf := attachments[1].(map[string]any)
	_, hasCid := pdf["cid"]
	assert.False(t, hasCid)
}

func TestEmailClient_Send_apiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "invalid from address"}`))
	}))
	defer srv.Close()

	client := NewEmailClient(srv.URL, "api-key-1", "broken")

	_, err := client.Send(context.Background(), EmailMessage{To: "a@b.io"})

	var notificationErr entity.NotificationError
	require.ErrorAs(t, err, &notificationErr)
	assert.Equal(t, "invalid from address", notificationErr.Reason)
}

func TestEmailClient_Send_transportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewEmailClient(srv.URL, "api-key-1", "from")

	_, err := client.Send(context.Background(), EmailMessage{To: "a@b.io"})

	var transportErr entity.TransportError
	assert.ErrorAs(t, err, &transportErr)
}
