package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/lithammer/shortuuid/v3"

	"boxoffice/entity"
	"boxoffice/metrics"
)

// fulfill issues tickets for a succeeded payment exactly once. The generated
// ticket IDs are only committed if this caller wins the claim; a concurrent
// or repeated observer gets the already-stored set back.
func (s *Service) fulfill(ctx context.Context, payment entity.Payment) ([]string, error) {
	quantity := payment.Metadata.QuantityInt()

	base := time.Now().UnixMilli()
	ticketIDs := make([]string, 0, quantity)
	for i := 0; i < quantity; i++ {
		ticketIDs = append(ticketIDs, fmt.Sprintf("TICKET-%d-%s-%d", base, randomTicketSuffix(), i))
	}

	ticketIDs, claimed, err := s.fulfillments.Claim(ctx, payment.ID, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("could not claim fulfillment for payment %s: %w", payment.ID, err)
	}
	if !claimed {
		return s.repairClaim(ctx, payment, ticketIDs)
	}

	logger := log.FromContext(ctx).WithField("payment_id", payment.ID)
	logger.WithField("tickets", len(ticketIDs)).Info("Issuing tickets for payment")

	if err := s.paymentsRepo.Store(ctx, payment); err != nil {
		logger.WithError(err).Warn("Could not store payment record")
	}

	if err := s.storeTickets(ctx, payment, ticketIDs); err != nil {
		// the claim is committed already, the next observation finishes
		// the issuance through repairClaim
		return nil, err
	}

	s.publishFulfillment(ctx, payment, ticketIDs)
	return ticketIDs, nil
}

// repairClaim finishes an issuance that was interrupted after its claim was
// committed. Any claimed ticket missing from the store means the claimant
// never got as far as publishing, so the repair stores what is missing and
// sends the events for the whole set. Redelivered webhooks and repeated
// status polls converge on the complete set this way. Stores are idempotent;
// racing a still-running claimant at worst duplicates an email.
func (s *Service) repairClaim(ctx context.Context, payment entity.Payment, ticketIDs []string) ([]string, error) {
	stored, err := s.ticketsRepo.FindByPayment(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("could not load tickets for payment %s: %w", payment.ID, err)
	}

	storedIDs := make(map[string]struct{}, len(stored))
	for _, t := range stored {
		storedIDs[t.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ticketIDs {
		if _, ok := storedIDs[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return ticketIDs, nil
	}

	log.FromContext(ctx).
		WithField("payment_id", payment.ID).
		WithField("missing", len(missing)).
		Warn("Finishing interrupted fulfillment")

	if err := s.storeTickets(ctx, payment, missing); err != nil {
		return nil, err
	}

	s.publishFulfillment(ctx, payment, ticketIDs)
	return ticketIDs, nil
}

func (s *Service) storeTickets(ctx context.Context, payment entity.Payment, ticketIDs []string) error {
	for _, ticketID := range ticketIDs {
		ticket := entity.Ticket{
			ID:         ticketID,
			PaymentID:  payment.ID,
			EventID:    payment.Metadata.EventID,
			CategoryID: payment.Metadata.CategoryID,
			IssuedAt:   time.Now().UTC(),
		}
		if err := s.ticketsRepo.Store(ctx, ticket); err != nil {
			return fmt.Errorf("could not store ticket %s: %w", ticketID, err)
		}
		metrics.TicketsIssued.WithLabelValues("paid").Inc()
	}
	return nil
}

// publishFulfillment sends one TicketIssued per ticket and a single
// PaymentFulfilled for the set. Publish failures only log: the tickets are
// stored either way, notification delivery never blocks issuance.
func (s *Service) publishFulfillment(ctx context.Context, payment entity.Payment, ticketIDs []string) {
	logger := log.FromContext(ctx).WithField("payment_id", payment.ID)

	if payment.Metadata.EmailWanted() {
		for _, ticketID := range ticketIDs {
			err := s.publisher.Publish(ctx, entity.TicketIssued{
				Header:        entity.NewEventHeader(),
				TicketID:      ticketID,
				PaymentID:     payment.ID,
				EventID:       payment.Metadata.EventID,
				CategoryID:    payment.Metadata.CategoryID,
				CustomerEmail: payment.Metadata.Email,
			})
			if err != nil {
				logger.WithField("ticket_id", ticketID).WithError(err).Error("Could not publish TicketIssued")
			}
		}
	}

	err := s.publisher.Publish(ctx, entity.PaymentFulfilled{
		Header:        entity.NewEventHeaderWithIdempotencyKey(payment.ID),
		PaymentID:     payment.ID,
		TicketIDs:     ticketIDs,
		CustomerEmail: payment.Metadata.Email,
		SendReceipt:   payment.Metadata.ReceiptWanted(),
	})
	if err != nil {
		logger.WithError(err).Error("Could not publish PaymentFulfilled")
	}
}

func randomTicketSuffix() string {
	return strings.ToLower(shortuuid.New())[:9]
}
