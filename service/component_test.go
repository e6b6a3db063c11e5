package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"boxoffice/catalog"
	"boxoffice/entity"
	"boxoffice/gateway"
	"boxoffice/purchase"
	"boxoffice/service"
)

const httpAddress = ":8095"

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Events: []entity.Event{
			{
				ID:    "live-1",
				Name:  "Neva Pulse Live",
				Date:  "2026-09-12",
				Time:  "20:00",
				Venue: "Main Hall",
				TicketCategories: []entity.TicketCategory{
					{ID: "dance", Name: "Dancefloor", Price: decimal.NewFromInt(600), Available: true},
					{ID: "guest", Name: "Guest list", Price: decimal.Zero, Available: true},
				},
			},
		},
	}
}

func TestComponent(t *testing.T) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("REDIS_ADDR not set, skipping component test")
	}

	leakOpts := goleak.IgnoreCurrent()

	ctx, cancel := context.WithCancel(context.Background())

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})

	paymentsMock := gateway.NewPaymentsMock()
	emailsMock := &gateway.EmailsMock{}

	finished := make(chan struct{})
	go func() {
		defer close(finished)

		svc := service.New(
			service.Config{
				Addr:      httpAddress,
				ReturnURL: "https://shop.example/return",
				Currency:  "RUB",
			},
			nil,
			redisClient,
			testCatalog(),
			paymentsMock,
			emailsMock,
		)
		assert.NoError(t, svc.Run(ctx))
	}()

	defer func() {
		cancel()
		<-finished
		_ = redisClient.Close()
		goleak.VerifyNone(t, leakOpts)
	}()

	waitForHTTPServer(t)

	t.Run("rejected request never reaches the gateway", func(t *testing.T) {
		resp := postJSON(t, "/create-payment", map[string]any{
			"amount":     100,
			"eventId":    "live-1",
			"categoryId": "dance",
			"quantity":   1,
			"email":      "a@b.io",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, paymentsMock.CreateCalls)
	})

	t.Run("free ticket is issued and emailed", func(t *testing.T) {
		email := fmt.Sprintf("guest-%s@b.io", uuid.NewString()[:8])

		resp := postJSON(t, "/create-payment", map[string]any{
			"amount":     0,
			"eventId":    "live-1",
			"categoryId": "guest",
			"quantity":   1,
			"email":      email,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result purchase.PurchaseResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Free)
		require.NotEmpty(t, result.TicketID)

		assert.Eventually(t, func() bool {
			return len(emailsMock.SentTo(email)) == 1
		}, 10*time.Second, 100*time.Millisecond)
	})

	t.Run("paid purchase end to end", func(t *testing.T) {
		email := fmt.Sprintf("buyer-%s@b.io", uuid.NewString()[:8])

		resp := postJSON(t, "/create-payment", map[string]any{
			"amount":     1200,
			"eventId":    "live-1",
			"categoryId": "dance",
			"quantity":   2,
			"email":      email,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var created purchase.PurchaseResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		require.NotEmpty(t, created.PaymentID)
		require.NotEmpty(t, created.ConfirmationURL)

		paymentsMock.SetStatus(created.PaymentID, entity.PaymentStatusSucceeded)

		status := getStatus(t, created.PaymentID)
		require.Len(t, status.TicketIDs, 2)

		// asking again returns the same tickets
		again := getStatus(t, created.PaymentID)
		assert.Equal(t, status.TicketIDs, again.TicketIDs)

		// two ticket emails plus one receipt
		assert.Eventually(t, func() bool {
			return len(emailsMock.SentTo(email)) == 3
		}, 10*time.Second, 100*time.Millisecond)
	})
}

func waitForHTTPServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get("http://localhost" + httpAddress + "/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		},
		10*time.Second,
		50*time.Millisecond,
	)
}

func postJSON(t *testing.T, path string, payload map[string]any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post("http://localhost"+httpAddress+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func getStatus(t *testing.T, paymentID string) purchase.StatusResult {
	t.Helper()

	resp, err := http.Get("http://localhost" + httpAddress + "/payment/" + paymentID + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result purchase.StatusResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
