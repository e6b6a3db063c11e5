package purchase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"boxoffice/entity"
)

// ResendTicketEmail queues the ticket email again for an already issued
// ticket. Delivery happens asynchronously with the usual retry policy.
func (s *Service) ResendTicketEmail(ctx context.Context, ticketID, email string) error {
	if email == "" {
		return entity.ValidationError{Reason: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return entity.ErrInvalidEmail
	}

	ticket, err := s.ticketsRepo.Get(ctx, ticketID)
	if err != nil {
		return err
	}

	err = s.publisher.Publish(ctx, entity.TicketIssued{
		Header:        entity.NewEventHeader(),
		TicketID:      ticket.ID,
		PaymentID:     ticket.PaymentID,
		EventID:       ticket.EventID,
		CategoryID:    ticket.CategoryID,
		CustomerEmail: email,
	})
	if err != nil {
		return fmt.Errorf("could not queue ticket email: %w", err)
	}
	return nil
}

// SendReceipt queues the informational receipt email for a succeeded
// payment.
func (s *Service) SendReceipt(ctx context.Context, paymentID string) error {
	if s.payments == nil {
		return entity.ErrGatewayNotConfigured
	}

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != entity.PaymentStatusSucceeded {
		return entity.ValidationError{Reason: fmt.Sprintf("payment %s is not succeeded", paymentID)}
	}
	if payment.Metadata.Email == "" {
		return entity.ValidationError{Reason: "payment has no customer email"}
	}

	tickets, err := s.ticketsRepo.FindByPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	ticketIDs := lo.Map(tickets, func(t entity.Ticket, _ int) string { return t.ID })

	err = s.publisher.Publish(ctx, entity.PaymentFulfilled{
		Header:        entity.NewEventHeader(),
		PaymentID:     payment.ID,
		TicketIDs:     ticketIDs,
		CustomerEmail: payment.Metadata.Email,
		SendReceipt:   true,
	})
	if err != nil {
		return fmt.Errorf("could not queue receipt email: %w", err)
	}
	return nil
}
