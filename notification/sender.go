package notification

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	qrcode "github.com/skip2/go-qrcode"

	"boxoffice/catalog"
	"boxoffice/entity"
	"boxoffice/gateway"
	"boxoffice/metrics"
)

type EmailSender interface {
	Send(ctx context.Context, msg gateway.EmailMessage) (string, error)
}

// Sender renders and sends customer-facing emails. It has no retry logic of
// its own: callers queue it behind the message router, which retries and
// dead-letters failures.
type Sender struct {
	emails  EmailSender
	catalog *catalog.Catalog
}

func NewSender(emails EmailSender, c *catalog.Catalog) *Sender {
	if emails == nil {
		panic("missing emails")
	}
	if c == nil {
		panic("missing catalog")
	}
	return &Sender{emails: emails, catalog: c}
}

var cidSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SendTicketEmail sends one ticket with an inline QR code and a printable
// PDF attachment. A failed PDF render degrades to QR-only rather than
// failing the email.
func (s *Sender) SendTicketEmail(ctx context.Context, ticketID, eventID, categoryID, email string) (string, error) {
	event, ok := s.catalog.FindEvent(eventID)
	if !ok {
		return "", entity.ErrEventNotFound
	}
	categoryName := ""
	if category, ok := s.catalog.FindCategory(event, categoryID); ok {
		categoryName = category.Name
	}

	qrPNG, err := qrcode.Encode(ticketID, qrcode.Medium, 200)
	if err != nil {
		return "", fmt.Errorf("could not render qr code: %w", err)
	}
	qrCid := "qr-" + cidSanitizer.ReplaceAllString(ticketID, "-")

	var html bytes.Buffer
	err = ticketEmailTemplate.Execute(&html, struct {
		EventName    string
		Date         string
		Time         string
		Venue        string
		Address      string
		CategoryName string
		TicketID     string
		QRCid        string
	}{
		EventName:    event.Name,
		Date:         event.Date,
		Time:         event.Time,
		Venue:        event.Venue,
		Address:      event.Address,
		CategoryName: categoryName,
		TicketID:     ticketID,
		QRCid:        qrCid,
	})
	if err != nil {
		return "", fmt.Errorf("could not render ticket email: %w", err)
	}

	attachments := []gateway.EmailAttachment{
		{
			Filename: fmt.Sprintf("qr-%s.png", ticketID),
			Content:  qrPNG,
			CID:      qrCid,
		},
	}

	pdf, err := renderTicketPDF(event, categoryName, ticketID, qrPNG)
	if err != nil {
		log.FromContext(ctx).
			WithField("ticket_id", ticketID).
			WithError(err).
			Warn("Could not render ticket PDF, sending without it")
	} else {
		attachments = append(attachments, gateway.EmailAttachment{
			Filename: fmt.Sprintf("ticket-%s.pdf", ticketID),
			Content:  pdf,
		})
	}

	emailID, err := s.emails.Send(ctx, gateway.EmailMessage{
		To:          email,
		Subject:     fmt.Sprintf("Your ticket: %s", event.Name),
		HTML:        html.String(),
		Attachments: attachments,
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues("ticket", "error").Inc()
		return "", err
	}
	metrics.EmailsSent.WithLabelValues("ticket", "ok").Inc()

	return emailID, nil
}

// SendReceiptEmail sends the informational (non-fiscal) receipt for a
// succeeded payment.
func (s *Sender) SendReceiptEmail(ctx context.Context, payment entity.Payment, ticketIDs []string) (string, error) {
	if payment.Metadata.Email == "" {
		return "", entity.NotificationError{Reason: "payment has no customer email"}
	}

	description := payment.Metadata.EventName
	if payment.Metadata.CategoryName != "" {
		description = fmt.Sprintf("%s - %s", payment.Metadata.EventName, payment.Metadata.CategoryName)
	}

	var html bytes.Buffer
	err := receiptEmailTemplate.Execute(&html, struct {
		PaymentID   string
		Date        string
		Description string
		TicketIDs   []string
		Amount      string
		Currency    string
	}{
		PaymentID:   payment.ID,
		Date:        payment.CreatedAt.Format("02.01.2006 15:04"),
		Description: description,
		TicketIDs:   ticketIDs,
		Amount:      payment.Amount.Value(),
		Currency:    payment.Amount.Currency,
	})
	if err != nil {
		return "", fmt.Errorf("could not render receipt email: %w", err)
	}

	emailID, err := s.emails.Send(ctx, gateway.EmailMessage{
		To:      payment.Metadata.Email,
		Subject: fmt.Sprintf("Payment receipt %s", payment.ID),
		HTML:    html.String(),
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues("receipt", "error").Inc()
		return "", err
	}
	metrics.EmailsSent.WithLabelValues("receipt", "ok").Inc()

	return emailID, nil
}
