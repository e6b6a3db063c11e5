package gateway

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"boxoffice/entity"
)

type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

func DefaultPollConfig() PollConfig {
	return PollConfig{
		Interval:    3 * time.Second,
		MaxAttempts: 20,
	}
}

type statusReader interface {
	GetPayment(ctx context.Context, paymentID string) (entity.Payment, error)
}

// AwaitTerminal re-reads the payment on a fixed interval until it reaches a
// terminal state or the attempt budget is exhausted, in which case
// entity.ErrConfirmationTimeout is returned rather than polling forever.
func AwaitTerminal(ctx context.Context, payments statusReader, paymentID string, cfg PollConfig) (entity.Payment, error) {
	if cfg.Interval <= 0 || cfg.MaxAttempts <= 0 {
		cfg = DefaultPollConfig()
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		payment, err := payments.GetPayment(ctx, paymentID)
		if err != nil {
			return entity.Payment{}, err
		}
		if payment.Status.Terminal() {
			return payment, nil
		}

		log.FromContext(ctx).
			WithField("payment_id", paymentID).
			WithField("status", payment.Status).
			Debug("Payment not terminal yet, waiting")

		select {
		case <-ctx.Done():
			return entity.Payment{}, ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}

	return entity.Payment{}, entity.ErrConfirmationTimeout
}
