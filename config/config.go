package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	PostgresURL string `env:"POSTGRES_URL"`

	CatalogPath string `env:"TICKETS_CONFIG" envDefault:"config/tickets.json"`

	GatewayAPIURL  string `env:"GATEWAY_API_URL" envDefault:"https://api.yookassa.ru/v3"`
	ShopID         string `env:"GATEWAY_SHOP_ID"`
	SecretKey      string `env:"GATEWAY_SECRET_KEY"`
	ReturnURL      string `env:"RETURN_URL" envDefault:"https://tupik.xyz/payment-success"`
	ReceiptEnabled bool   `env:"GATEWAY_RECEIPT_ENABLED" envDefault:"false"`
	Currency       string `env:"CURRENCY" envDefault:"RUB"`

	EmailAPIURL string `env:"EMAIL_API_URL" envDefault:"https://api.resend.com"`
	EmailAPIKey string `env:"EMAIL_API_KEY"`
	EmailFrom   string `env:"EMAIL_FROM" envDefault:"Tickets <noreply@ticket-story.com>"`

	JaegerEndpoint string `env:"JAEGER_ENDPOINT"`
}

func Load() (Config, error) {
	// missing .env is fine, the environment may be set by the runtime
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse environment: %w", err)
	}

	return cfg, nil
}
