package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"boxoffice/entity"
)

// PaymentsClient talks to the payment provider's checkout REST API: create
// a payment with a hosted confirmation page, and re-read its state. All
// mutation of payment state happens on the provider's side.
type PaymentsClient struct {
	baseURL   string
	shopID    string
	secretKey string
	hc        *http.Client
}

func NewPaymentsClient(baseURL, shopID, secretKey string) *PaymentsClient {
	return &PaymentsClient{
		baseURL:   baseURL,
		shopID:    shopID,
		secretKey: secretKey,
		hc: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// CreatePaymentRequest is the provider-agnostic shape the purchase flow
// hands over. The wire format is assembled here.
type CreatePaymentRequest struct {
	Amount      entity.Money
	Description string
	ReturnURL   string
	Metadata    entity.PaymentMetadata

	// Receipt, when set, asks the provider's fiscal integration to issue a
	// tax-compliant receipt alongside the charge.
	Receipt *FiscalReceipt
}

// FiscalReceipt describes the single line item of a ticket purchase for the
// provider's cash-register integration.
type FiscalReceipt struct {
	CustomerEmail   string
	ItemDescription string
	Quantity        int
	Amount          entity.Money
}

type moneyPayload struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmationPayload struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type receiptItemPayload struct {
	Description    string       `json:"description"`
	Quantity       string       `json:"quantity"`
	Amount         moneyPayload `json:"amount"`
	VatCode        int          `json:"vat_code"`
	PaymentSubject string       `json:"payment_subject"`
	PaymentMode    string       `json:"payment_mode"`
	Measure        string       `json:"measure"`
}

type receiptPayload struct {
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
	Items       []receiptItemPayload `json:"items"`
	Settlements []struct {
		Type string `json:"type"`
	} `json:"settlements"`
	Timezone int `json:"timezone"`
}

type createPaymentPayload struct {
	Amount            moneyPayload `json:"amount"`
	PaymentMethodData struct {
		Type string `json:"type"`
	} `json:"payment_method_data"`
	Confirmation confirmationPayload    `json:"confirmation"`
	Capture      bool                   `json:"capture"`
	Description  string                 `json:"description"`
	Metadata     entity.PaymentMetadata `json:"metadata"`
	Receipt      *receiptPayload        `json:"receipt,omitempty"`
}

type paymentReply struct {
	ID           string                 `json:"id"`
	Status       string                 `json:"status"`
	Paid         bool                   `json:"paid"`
	Amount       moneyPayload           `json:"amount"`
	Confirmation *confirmationPayload   `json:"confirmation"`
	Metadata     entity.PaymentMetadata `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
}

type errorReply struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// CreatePayment starts a bank-transfer charge with a redirect confirmation
// flow and immediate capture. The idempotence key guards against retried
// calls double-charging at the gateway layer.
func (c *PaymentsClient) CreatePayment(ctx context.Context, request CreatePaymentRequest, idempotenceKey string) (entity.Payment, error) {
	payload := createPaymentPayload{
		Amount: moneyPayload{
			Value:    request.Amount.Value(),
			Currency: request.Amount.Currency,
		},
		Confirmation: confirmationPayload{
			Type:      "redirect",
			ReturnURL: request.ReturnURL,
		},
		Capture:     true,
		Description: request.Description,
		Metadata:    request.Metadata,
	}
	payload.PaymentMethodData.Type = "sbp"

	if request.Receipt != nil {
		r := &receiptPayload{
			Items: []receiptItemPayload{{
				Description: request.Receipt.ItemDescription,
				Quantity:    fmt.Sprintf("%d", request.Receipt.Quantity),
				Amount: moneyPayload{
					Value:    request.Receipt.Amount.Value(),
					Currency: request.Receipt.Amount.Currency,
				},
				VatCode:        1,
				PaymentSubject: "service",
				PaymentMode:    "full_payment",
				Measure:        "piece",
			}},
			Settlements: []struct {
				Type string `json:"type"`
			}{{Type: "cashless"}},
			Timezone: 2,
		}
		r.Customer.Email = request.Receipt.CustomerEmail
		payload.Receipt = r
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("createPayment: json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return entity.Payment{}, fmt.Errorf("createPayment: http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", idempotenceKey)
	req.SetBasicAuth(c.shopID, c.secretKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return entity.Payment{}, entity.TransportError{Op: "createPayment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Payment{}, c.gatewayError(resp)
	}

	var reply paymentReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return entity.Payment{}, fmt.Errorf("createPayment: json.Decode: %w", err)
	}

	payment, err := reply.toDomain()
	if err != nil {
		return entity.Payment{}, fmt.Errorf("createPayment: %w", err)
	}
	if payment.ConfirmationURL == "" {
		return entity.Payment{}, entity.GatewayError{
			StatusCode:  resp.StatusCode,
			Description: "no confirmation URL in the gateway response",
		}
	}

	return payment, nil
}

// GetPayment re-reads the payment's current state from the gateway.
func (c *PaymentsClient) GetPayment(ctx context.Context, paymentID string) (entity.Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("getPayment: http.NewRequestWithContext: %w", err)
	}
	req.SetBasicAuth(c.shopID, c.secretKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return entity.Payment{}, entity.TransportError{Op: "getPayment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entity.Payment{}, entity.ErrPaymentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return entity.Payment{}, c.gatewayError(resp)
	}

	var reply paymentReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return entity.Payment{}, fmt.Errorf("getPayment: json.Decode: %w", err)
	}

	payment, err := reply.toDomain()
	if err != nil {
		return entity.Payment{}, fmt.Errorf("getPayment: %w", err)
	}

	return payment, nil
}

func (c *PaymentsClient) gatewayError(resp *http.Response) error {
	var reply errorReply
	_ = json.NewDecoder(resp.Body).Decode(&reply)

	description := reply.Description
	if description == "" {
		description = reply.Message
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		description = "invalid gateway credentials, check GATEWAY_SHOP_ID and GATEWAY_SECRET_KEY"
	case http.StatusForbidden:
		if description == "" {
			description = "access to the gateway shop is forbidden"
		}
	}

	return entity.GatewayError{
		StatusCode:  resp.StatusCode,
		Description: description,
	}
}

func (r paymentReply) toDomain() (entity.Payment, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return entity.Payment{}, err
	}

	payment := entity.Payment{
		ID:        r.ID,
		Status:    entity.PaymentStatus(r.Status),
		Paid:      r.Paid,
		Amount:    amount,
		Metadata:  r.Metadata,
		CreatedAt: r.CreatedAt,
	}
	if r.Confirmation != nil {
		payment.ConfirmationURL = r.Confirmation.ConfirmationURL
	}

	return payment, nil
}
