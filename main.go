package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"boxoffice/catalog"
	"boxoffice/config"
	"boxoffice/db"
	"boxoffice/gateway"
	"boxoffice/notification"
	"boxoffice/purchase"
	"boxoffice/service"
	"boxoffice/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Init(logrus.InfoLevel)
	logger := log.FromContext(ctx)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Could not load configuration")
	}

	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.WithError(err).Fatal("Could not load event catalog")
	}

	tp := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	var psqlDB *sqlx.DB
	if cfg.PostgresURL != "" {
		psqlDB, err = db.Open(cfg.PostgresURL)
		if err != nil {
			logger.WithError(err).Fatal("Could not connect to postgres")
		}
		defer psqlDB.Close()
	} else {
		logger.Warn("POSTGRES_URL not set, using in-memory repositories")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	// env credentials win, the catalog file carries a fallback pair
	shopID, secretKey := cfg.ShopID, cfg.SecretKey
	if shopID == "" || secretKey == "" {
		shopID, secretKey = c.Gateway.ShopID, c.Gateway.SecretKey
	}

	var paymentsGateway purchase.PaymentsGateway
	if shopID != "" && secretKey != "" {
		paymentsGateway = gateway.NewPaymentsClient(cfg.GatewayAPIURL, shopID, secretKey)
	} else {
		logger.Warn("Payment gateway credentials not configured, only free tickets can be issued")
	}

	var emailSender notification.EmailSender
	if cfg.EmailAPIKey != "" {
		emailSender = gateway.NewEmailClient(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom)
	} else {
		logger.Warn("EMAIL_API_KEY not set, emails will not be delivered")
		emailSender = gateway.NoopEmailSender{}
	}

	svc := service.New(
		service.Config{
			Addr:           ":" + cfg.Port,
			ReturnURL:      cfg.ReturnURL,
			Currency:       cfg.Currency,
			ReceiptEnabled: cfg.ReceiptEnabled,
		},
		psqlDB,
		redisClient,
		c,
		paymentsGateway,
		emailSender,
	)

	if err := svc.Run(ctx); err != nil {
		logger.WithError(err).Fatal("Service stopped with error")
	}
}
