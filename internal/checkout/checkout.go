// Package checkout describes the hosted payment widget the donation flow
// drives, and ships a local sandbox implementation of it.
package checkout

import (
	"errors"

	"github.com/alumni-network/donation-client/internal/model"
)

// EventPaymentFailed is emitted when the donor's payment is declined.
const EventPaymentFailed = "payment.failed"

var ErrNoHandler = errors.New("checkout: success handler is required")

type Prefill struct {
	Name    string
	Email   string
	Contact string
}

type Theme struct {
	Color string
}

// Options configure one widget session.
type Options struct {
	Key         string
	Amount      int64 // paise
	Currency    string
	Name        string
	Description string
	OrderID     string
	Prefill     Prefill
	Notes       map[string]string
	Theme       Theme
	Handler     func(model.PaymentResult)
}

// Failure is the payload of a payment.failed event.
type Failure struct {
	Code        string
	Description string
	Source      string
	Step        string
	Reason      string
}

// Widget is an opened checkout session. Exactly one of the success handler
// or a payment.failed callback fires per Open.
type Widget interface {
	Open() error
	On(event string, cb func(Failure))
}

// Factory builds a widget for the given options.
type Factory func(Options) (Widget, error)
