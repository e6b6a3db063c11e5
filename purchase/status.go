package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"boxoffice/entity"
	"boxoffice/gateway"
)

type StatusResult struct {
	Success   bool                   `json:"success"`
	Status    entity.PaymentStatus   `json:"status"`
	Paid      bool                   `json:"paid"`
	TicketID  string                 `json:"ticketId,omitempty"`
	TicketIDs []string               `json:"ticketIds"`
	Metadata  entity.PaymentMetadata `json:"metadata"`
}

// Status re-reads the payment from the gateway once and, if it succeeded,
// triggers fulfillment. Asking again after success returns the same tickets.
func (s *Service) Status(ctx context.Context, paymentID string) (StatusResult, error) {
	if s.payments == nil {
		return StatusResult{}, entity.ErrGatewayNotConfigured
	}

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return StatusResult{}, err
	}

	result := StatusResult{
		Success:   true,
		Status:    payment.Status,
		Paid:      payment.Paid,
		TicketIDs: []string{},
		Metadata:  payment.Metadata,
	}

	if payment.Status == entity.PaymentStatusSucceeded {
		ticketIDs, err := s.fulfill(ctx, payment)
		if err != nil {
			return StatusResult{}, err
		}
		result.TicketIDs = ticketIDs
		if len(ticketIDs) > 0 {
			result.TicketID = ticketIDs[0]
		}
	}

	return result, nil
}

// webhookPollConfig keeps the webhook response fast: the gateway already
// claims the payment is terminal, re-reading is only confirmation.
var webhookPollConfig = gateway.PollConfig{
	Interval:    2 * time.Second,
	MaxAttempts: 3,
}

// ConfirmFromWebhook handles a gateway notification. The webhook body is
// never trusted: the payment state is re-read from the gateway before any
// ticket is issued.
func (s *Service) ConfirmFromWebhook(ctx context.Context, paymentID string) error {
	if s.payments == nil {
		return entity.ErrGatewayNotConfigured
	}

	payment, err := gateway.AwaitTerminal(ctx, s.payments, paymentID, webhookPollConfig)
	if err != nil {
		return fmt.Errorf("could not confirm payment %s: %w", paymentID, err)
	}

	switch payment.Status {
	case entity.PaymentStatusSucceeded:
		if _, err := s.fulfill(ctx, payment); err != nil {
			return err
		}
	case entity.PaymentStatusCanceled:
		if err := s.paymentsRepo.Store(ctx, payment); err != nil {
			log.FromContext(ctx).
				WithField("payment_id", payment.ID).
				WithError(err).
				Warn("Could not store canceled payment")
		}
		err := s.publisher.Publish(ctx, entity.PaymentCanceled{
			Header:    entity.NewEventHeaderWithIdempotencyKey(payment.ID),
			PaymentID: payment.ID,
		})
		if err != nil {
			return fmt.Errorf("could not publish PaymentCanceled: %w", err)
		}
	}

	return nil
}
