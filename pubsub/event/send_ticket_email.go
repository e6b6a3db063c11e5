package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
)

func (h Handler) SendTicketEmailHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"SendTicketEmailHandler",
		func(ctx context.Context, event *entity.TicketIssued) error {
			log.FromContext(ctx).
				WithField("ticket_id", event.TicketID).
				Info("Sending ticket email")

			_, err := h.notifier.SendTicketEmail(ctx, event.TicketID, event.EventID, event.CategoryID, event.CustomerEmail)
			if err != nil {
				return fmt.Errorf("failed to send ticket email for %s: %w", event.TicketID, err)
			}

			return nil
		},
	)
}
