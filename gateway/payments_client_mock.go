package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxoffice/entity"
)

// PaymentsMock stands in for the hosted checkout in tests. Created payments
// start out pending; tests move them with SetStatus.
type PaymentsMock struct {
	lock sync.Mutex

	Payments        map[string]entity.Payment
	IdempotenceKeys []string
	CreateCalls     int
	GetCalls        int
}

func NewPaymentsMock() *PaymentsMock {
	return &PaymentsMock{
		Payments: map[string]entity.Payment{},
	}
}

func (m *PaymentsMock) CreatePayment(_ context.Context, request CreatePaymentRequest, idempotenceKey string) (entity.Payment, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.CreateCalls++
	m.IdempotenceKeys = append(m.IdempotenceKeys, idempotenceKey)

	payment := entity.Payment{
		ID:              uuid.NewString(),
		Status:          entity.PaymentStatusPending,
		Amount:          request.Amount,
		ConfirmationURL: fmt.Sprintf("https://checkout.test/confirm/%s", idempotenceKey),
		Metadata:        request.Metadata,
		CreatedAt:       time.Now().UTC(),
	}
	m.Payments[payment.ID] = payment

	return payment, nil
}

func (m *PaymentsMock) GetPayment(_ context.Context, paymentID string) (entity.Payment, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.GetCalls++

	payment, ok := m.Payments[paymentID]
	if !ok {
		return entity.Payment{}, entity.ErrPaymentNotFound
	}
	return payment, nil
}

func (m *PaymentsMock) SetStatus(paymentID string, status entity.PaymentStatus) {
	m.lock.Lock()
	defer m.lock.Unlock()

	payment := m.Payments[paymentID]
	payment.Status = status
	payment.Paid = status == entity.PaymentStatusSucceeded
	m.Payments[paymentID] = payment
}

// Seed registers a payment that was not created through this mock, the way
// a webhook references payments created elsewhere.
func (m *PaymentsMock) Seed(payment entity.Payment) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.Payments[payment.ID] = payment
}
