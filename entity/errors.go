package entity

import (
	"errors"
	"fmt"
)

// ValidationError rejects a request before any gateway call is made.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// NotFoundError covers unknown events, categories, payments and tickets.
type NotFoundError struct {
	Reason string
}

func (e NotFoundError) Error() string { return e.Reason }

// ConfigurationError means the server side is missing credentials or other
// required configuration. Never caused by client input.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string { return e.Reason }

// GatewayError is a rejection or failure reported by the payment provider.
// StatusCode mirrors the upstream HTTP status when known.
type GatewayError struct {
	StatusCode  int
	Description string
}

func (e GatewayError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("gateway error: %s", e.Description)
	}
	return fmt.Sprintf("gateway error (status %d)", e.StatusCode)
}

// TransportError is a network-level failure talking to an upstream.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

// NotificationError is an email delivery failure. It is logged and retried
// by the dispatcher, never surfaced to the payment flow's caller.
type NotificationError struct {
	Reason string
}

func (e NotificationError) Error() string { return e.Reason }

var (
	ErrMissingFields  = ValidationError{Reason: "missing required fields: amount, eventId, categoryId, quantity"}
	ErrInvalidEmail   = ValidationError{Reason: "invalid email address"}
	ErrAmountMismatch = ValidationError{Reason: "payment amount does not match the ticket price"}

	ErrEventNotFound    = NotFoundError{Reason: "event not found"}
	ErrCategoryNotFound = NotFoundError{Reason: "ticket category not found"}
	ErrPaymentNotFound  = NotFoundError{Reason: "payment not found"}
	ErrTicketNotFound   = NotFoundError{Reason: "ticket not found"}

	ErrGatewayNotConfigured = ConfigurationError{Reason: "payment gateway credentials are not configured"}
	ErrEmailNotConfigured   = ConfigurationError{Reason: "email service is not configured"}

	// ErrConfirmationTimeout is returned when a payment does not reach a
	// terminal state within the polling budget.
	ErrConfirmationTimeout = errors.New("payment could not be confirmed in time")
)
