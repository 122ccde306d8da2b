// Package apperr classifies the errors a donation cycle can end with.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrOrderFailed        = errors.New("order creation failed")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrSubmitInFlight     = errors.New("donation already in progress")
	ErrMissingKey         = errors.New("checkout key not found")
)

// RequestError is returned when the backend answers with a non-2xx status.
// Message carries the server-provided message field, or a fallback.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *RequestError) Kind() string { return "request_failed" }

// kinder is satisfied by domain errors
// that carry their own classification.
type kinder interface {
	Kind() string
}

// Kind returns a stable classification for err.
// Sentinels take precedence over a Kind method on a wrapped error, so
// "order creation failed: <RequestError>" still reports order_failed.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation"

	case errors.Is(err, ErrOrderFailed):
		return "order_failed"

	case errors.Is(err, ErrPaymentFailed):
		return "payment_failed"

	case errors.Is(err, ErrVerificationFailed):
		return "verification_failed"

	case errors.Is(err, ErrSubmitInFlight):
		return "in_flight"

	case errors.Is(err, ErrMissingKey):
		return "missing_key"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "internal"
}

// Message returns the text of the innermost RequestError in err's chain,
// or err.Error() when there is none.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}
