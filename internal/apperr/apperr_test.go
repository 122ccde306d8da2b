package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("donation: %w", ErrOrderFailed)
	reqErr := &RequestError{Status: 400, Message: "bad amount"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: ErrValidation, want: "validation"},
		{name: "order_failed_wrapped", err: wrapped, want: "order_failed"},
		{name: "order_failed_over_request", err: fmt.Errorf("%w: %w", ErrOrderFailed, reqErr), want: "order_failed"},
		{name: "payment_failed", err: ErrPaymentFailed, want: "payment_failed"},
		{name: "verification_failed", err: ErrVerificationFailed, want: "verification_failed"},
		{name: "in_flight", err: ErrSubmitInFlight, want: "in_flight"},
		{name: "missing_key", err: ErrMissingKey, want: "missing_key"},
		{name: "request_error", err: fmt.Errorf("api: %w", reqErr), want: "request_failed"},
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "unknown", err: errors.New("unknown"), want: "internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Kind(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("boom"), want: "boom"},
		{name: "request_error", err: fmt.Errorf("%w: %w", ErrOrderFailed, &RequestError{Status: 400, Message: "X"}), want: "X"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Message(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRequestErrorText(t *testing.T) {
	t.Parallel()

	err := &RequestError{Status: 502, Message: "Request failed"}
	if got := err.Error(); got != "Request failed (status 502)" {
		t.Fatalf("unexpected error text %q", got)
	}
}
