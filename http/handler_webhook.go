package http

import (
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type webhookRequest struct {
	Event  string `json:"event"`
	Object struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"object"`
}

// PostPaymentWebhook handles gateway notifications. The reported status is
// never trusted: the service re-reads the payment from the gateway before
// issuing anything. The gateway expects a plaintext OK and redelivers on
// anything else, so a body we could not read must not be acknowledged.
func (s Server) PostPaymentWebhook(c echo.Context) error {
	var request webhookRequest
	if err := c.Bind(&request); err != nil {
		log.FromContext(c.Request().Context()).WithError(err).Error("Could not parse webhook body")
		return c.String(http.StatusInternalServerError, "Error")
	}

	ctx := c.Request().Context()
	logger := log.FromContext(ctx).
		WithField("webhook_event", request.Event).
		WithField("payment_id", request.Object.ID)

	switch request.Event {
	case "payment.succeeded", "payment.canceled":
		if request.Object.ID == "" {
			logger.Warn("Webhook without payment id")
			return c.String(http.StatusOK, "OK")
		}
		if err := s.service.ConfirmFromWebhook(ctx, request.Object.ID); err != nil {
			logger.WithError(err).Error("Could not process webhook")
			return c.String(http.StatusInternalServerError, "Error")
		}
	default:
		logger.Info("Ignoring unknown webhook event")
	}

	return c.String(http.StatusOK, "OK")
}
