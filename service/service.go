package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"boxoffice/catalog"
	"boxoffice/db"
	"boxoffice/db/fulfillments"
	"boxoffice/db/payments"
	"boxoffice/db/tickets"
	"boxoffice/http"
	"boxoffice/notification"
	"boxoffice/pubsub"
	"boxoffice/pubsub/event"
	"boxoffice/purchase"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Config struct {
	Addr           string
	ReturnURL      string
	Currency       string
	ReceiptEnabled bool
}

type Service struct {
	db              *sqlx.DB
	watermillRouter *message.Router
	httpServer      *http.Server
}

// New wires the whole service. paymentsGateway may be nil when no gateway
// credentials are configured; the service then serves the catalog and free
// tickets only. psqlDB may be nil, in which case everything is kept in
// memory.
func New(
	cfg Config,
	psqlDB *sqlx.DB,
	redisClient *redis.Client,
	c *catalog.Catalog,
	paymentsGateway purchase.PaymentsGateway,
	emailSender notification.EmailSender,
) Service {
	var (
		paymentsRepo     purchase.PaymentsRepository
		ticketsRepo      purchase.TicketsRepository
		fulfillmentsRepo purchase.FulfillmentsRepository
	)
	if psqlDB != nil {
		paymentsRepo = payments.NewPostgresRepository(psqlDB)
		ticketsRepo = tickets.NewPostgresRepository(psqlDB)
		fulfillmentsRepo = fulfillments.NewPostgresRepository(psqlDB)
	} else {
		paymentsRepo = payments.NewMemoryRepository()
		ticketsRepo = tickets.NewMemoryRepository()
		fulfillmentsRepo = fulfillments.NewMemoryRepository()
	}

	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	var redisPublisher message.Publisher
	redisPublisher = pubsub.NewRedisPublisher(redisClient, watermillLogger)
	redisPublisher = log.CorrelationPublisherDecorator{Publisher: redisPublisher}

	eventBus, err := pubsub.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	purchaseService := purchase.NewService(
		c,
		paymentsGateway,
		paymentsRepo,
		ticketsRepo,
		fulfillmentsRepo,
		eventBus,
		cfg.ReturnURL,
		cfg.Currency,
		cfg.ReceiptEnabled,
	)

	sender := notification.NewSender(emailSender, c)

	var paymentsReader event.PaymentsReader
	if paymentsGateway != nil {
		paymentsReader = paymentsGateway
	}
	eventsHandler := event.NewHandler(sender, paymentsReader)

	watermillRouter, err := pubsub.NewWatermillRouter(
		redisClient,
		redisPublisher,
		eventsHandler,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(cfg.Addr, purchaseService)

	return Service{
		db:              psqlDB,
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	if s.db != nil {
		if err := db.InitializeDatabaseSchema(s.db); err != nil {
			return fmt.Errorf("failed to initialize database schema: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// the HTTP server starts only once the router is running, so the
		// service is not reported healthy before it can handle events
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
