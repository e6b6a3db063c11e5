package http

import (
	"context"
	"errors"
	"net/http"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"boxoffice/entity"
	"boxoffice/purchase"
)

type PurchaseService interface {
	Events() []entity.Event
	CreatePurchase(ctx context.Context, req entity.PurchaseRequest) (purchase.PurchaseResult, error)
	Status(ctx context.Context, paymentID string) (purchase.StatusResult, error)
	ConfirmFromWebhook(ctx context.Context, paymentID string) error
	ResendTicketEmail(ctx context.Context, ticketID, email string) error
	SendReceipt(ctx context.Context, paymentID string) error
	Ticket(ctx context.Context, ticketID string) (entity.Ticket, error)
}

type Server struct {
	addr    string
	e       *echo.Echo
	service PurchaseService
}

func NewServer(addr string, service PurchaseService) *Server {
	e := echoHTTP.NewEcho()
	e.HTTPErrorHandler = handleError
	e.Use(otelecho.Middleware("boxoffice"))
	e.Use(corsMiddleware)

	server := &Server{
		addr:    addr,
		e:       e,
		service: service,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/events", server.GetEvents)
	e.POST("/create-payment", server.PostCreatePayment)
	e.GET("/payment/:paymentId/status", server.GetPaymentStatus)
	e.POST("/payment/:paymentId/send-receipt", server.PostSendReceipt)
	e.POST("/payment-webhook", server.PostPaymentWebhook)
	e.POST("/ticket/:ticketId/send-email", server.PostSendTicketEmail)
	e.GET("/ticket/:ticketId/wallet", server.GetWalletPass)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(ctx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
