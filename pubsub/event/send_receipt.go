package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
)

func (h Handler) SendReceiptHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"SendReceiptHandler",
		func(ctx context.Context, event *entity.PaymentFulfilled) error {
			if !event.SendReceipt {
				return nil
			}

			logger := log.FromContext(ctx).WithField("payment_id", event.PaymentID)

			if h.payments == nil {
				logger.Warn("Payment gateway not configured, skipping receipt")
				return nil
			}

			logger.Info("Sending receipt email")

			payment, err := h.payments.GetPayment(ctx, event.PaymentID)
			if err != nil {
				return fmt.Errorf("failed to load payment %s: %w", event.PaymentID, err)
			}

			_, err = h.notifier.SendReceiptEmail(ctx, payment, event.TicketIDs)
			if err != nil {
				return fmt.Errorf("failed to send receipt for payment %s: %w", event.PaymentID, err)
			}

			return nil
		},
	)
}
