package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/alumni-network/donation-client/internal/model"
)

// Sandbox stands in for the hosted widget when no browser is around.
// It approves every payment unless Decline is set.
type Sandbox struct {
	Secret  string
	Decline bool
	Reason  string
}

// Factory returns a checkout.Factory backed by s.
func (s Sandbox) Factory() Factory {
	return func(opts Options) (Widget, error) {
		if opts.Handler == nil {
			return nil, ErrNoHandler
		}
		return &sandboxWidget{cfg: s, opts: opts, handlers: map[string][]func(Failure){}}, nil
	}
}

type sandboxWidget struct {
	cfg  Sandbox
	opts Options

	mu       sync.Mutex
	handlers map[string][]func(Failure)
}

func (w *sandboxWidget) On(event string, cb func(Failure)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[event] = append(w.handlers[event], cb)
}

func (w *sandboxWidget) Open() error {
	if w.cfg.Decline {
		reason := w.cfg.Reason
		if reason == "" {
			reason = "Payment declined by sandbox"
		}
		f := Failure{
			Code:        "BAD_REQUEST_ERROR",
			Description: reason,
			Source:      "customer",
			Step:        "payment_authorization",
			Reason:      "payment_failed",
		}
		w.mu.Lock()
		cbs := append([]func(Failure){}, w.handlers[EventPaymentFailed]...)
		w.mu.Unlock()
		for _, cb := range cbs {
			cb(f)
		}
		return nil
	}

	paymentID := "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
	w.opts.Handler(model.PaymentResult{
		RazorpayOrderID:   w.opts.OrderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: Sign(w.cfg.Secret, w.opts.OrderID, paymentID),
	})
	return nil
}

// Sign computes the gateway signature: hex HMAC-SHA256 of
// "order_id|payment_id" under secret.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether r carries a valid signature under secret.
func VerifySignature(secret string, r model.PaymentResult) bool {
	want := Sign(secret, r.RazorpayOrderID, r.RazorpayPaymentID)
	return hmac.Equal([]byte(want), []byte(r.RazorpaySignature))
}
