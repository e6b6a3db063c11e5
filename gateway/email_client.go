package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"boxoffice/entity"
)

// EmailClient submits transactional emails to the email provider's REST
// API. Attachments travel base64-encoded; a CID makes an attachment
// addressable from the HTML body as an inline image.
type EmailClient struct {
	baseURL string
	apiKey  string
	from    string
	hc      *http.Client
}

func NewEmailClient(baseURL, apiKey, from string) *EmailClient {
	return &EmailClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type EmailAttachment struct {
	Filename string
	Content  []byte
	CID      string
}

type EmailMessage struct {
	To          string
	Subject     string
	HTML        string
	Attachments []EmailAttachment
}

type emailAttachmentPayload struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	CID      string `json:"cid,omitempty"`
}

type emailPayload struct {
	From        string                   `json:"from"`
	To          string                   `json:"to"`
	Subject     string                   `json:"subject"`
	HTML        string                   `json:"html"`
	Attachments []emailAttachmentPayload `json:"attachments,omitempty"`
}

type emailReply struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// NoopEmailSender stands in when no email API key is configured. It logs
// the email instead of delivering it, so the rest of the flow keeps working
// in development.
type NoopEmailSender struct{}

func (NoopEmailSender) Send(ctx context.Context, msg EmailMessage) (string, error) {
	log.FromContext(ctx).
		WithField("to", msg.To).
		WithField("subject", msg.Subject).
		Warn("Email service not configured, dropping email")
	return "noop", nil
}

// Send submits one email and returns the provider-assigned email id.
func (c *EmailClient) Send(ctx context.Context, msg EmailMessage) (string, error) {
	payload := emailPayload{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, emailAttachmentPayload{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
			CID:      a.CID,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("sendEmail: json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("sendEmail: http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", entity.TransportError{Op: "sendEmail", Err: err}
	}
	defer resp.Body.Close()

	var reply emailReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("sendEmail: json.Decode: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		reason := reply.Message
		if reason == "" {
			reason = fmt.Sprintf("email API returned status %d", resp.StatusCode)
		}
		return "", entity.NotificationError{Reason: reason}
	}

	return reply.ID, nil
}
