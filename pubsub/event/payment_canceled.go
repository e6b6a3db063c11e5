package event

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
)

func (h Handler) PaymentCanceledHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"PaymentCanceledHandler",
		func(ctx context.Context, event *entity.PaymentCanceled) error {
			log.FromContext(ctx).
				WithField("payment_id", event.PaymentID).
				Info("Payment canceled, no tickets issued")

			return nil
		},
	)
}
