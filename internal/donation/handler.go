// Package donation drives one donation from form submit to verified
// payment: validate, create order, checkout widget, verify.
package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alumni-network/donation-client/internal/apperr"
	"github.com/alumni-network/donation-client/internal/checkout"
	"github.com/alumni-network/donation-client/internal/format"
	"github.com/alumni-network/donation-client/internal/model"
	"github.com/alumni-network/donation-client/internal/notify"
	"github.com/alumni-network/donation-client/internal/service/tracker"
	"github.com/alumni-network/donation-client/internal/validate"
	"github.com/alumni-network/donation-client/internal/view"
)

const (
	MsgInFlight           = "A donation is already being processed"
	MsgOrderFallback      = "Failed to create order"
	MsgPaymentFailed      = "Payment failed: "
	MsgVerificationFailed = "Payment verification failed. Please contact support."
	MsgThankYou           = "Thank you for your donation! Certificate sent to your email."
)

// Backend is the part of the API client the handler needs.
type Backend interface {
	CreateOrder(ctx context.Context, in model.DonationInput) (model.OrderResponse, error)
	VerifyPayment(ctx context.Context, in model.VerifyRequest) (model.VerifyResponse, error)
}

// Settings are the fixed checkout parameters.
type Settings struct {
	Key         string
	MinAmount   float64
	Currency    string
	Brand       string
	Description string
	ThemeColor  string
	ReloadDelay time.Duration
}

// DefaultSettings returns the page's stock checkout parameters for key.
func DefaultSettings(key string) Settings {
	return Settings{
		Key:         key,
		MinAmount:   100,
		Currency:    "INR",
		Brand:       "Alumni Network",
		Description: "Donation",
		ThemeColor:  "#667eea",
		ReloadDelay: 2 * time.Second,
	}
}

// Rules returns the donation form rules for the given minimum amount.
func Rules(minAmount float64) validate.RuleSet {
	return validate.RuleSet{
		{Field: "name", Rule: validate.Rule{Label: "Name", Required: true}},
		{Field: "email", Rule: validate.Rule{Label: "Email", Required: true, Email: true}},
		{Field: "batch_year", Rule: validate.Rule{Label: "Batch Year", Required: true}},
		{Field: "amount", Rule: validate.Rule{Label: "Amount", Required: true, Min: validate.Bound(minAmount)}},
	}
}

// Handler owns a donation form.
type Handler struct {
	form      *view.Form
	validator *view.FormValidator
	api       Backend
	widgets   checkout.Factory
	notifier  notify.Notifier
	settings  Settings
	logger    *slog.Logger
	reload    func()
	onCycle   func(model.CycleReport)

	tr    *tracker.Tracker
	state atomic.Int32
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithReload sets what runs ReloadDelay after a verified donation.
func WithReload(fn func()) Option {
	return func(h *Handler) { h.reload = fn }
}

// WithOnCycle registers fn to receive every finished cycle's report.
func WithOnCycle(fn func(model.CycleReport)) Option {
	return func(h *Handler) { h.onCycle = fn }
}

func WithTracker(tr *tracker.Tracker) Option {
	return func(h *Handler) { h.tr = tr }
}

// New binds a Handler to form. The checkout key must be set.
func New(form *view.Form, api Backend, widgets checkout.Factory, n notify.Notifier, s Settings, opts ...Option) (*Handler, error) {
	if s.Key == "" {
		return nil, apperr.ErrMissingKey
	}
	h := &Handler{
		form:      form,
		validator: view.NewFormValidator(form),
		api:       api,
		widgets:   widgets,
		notifier:  n,
		settings:  s,
		logger:    slog.Default(),
		reload:    func() {},
		tr:        &tracker.Tracker{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// State returns the current state.
func (h *Handler) State() State { return State(h.state.Load()) }

func (h *Handler) setState(s State) {
	prev := State(h.state.Swap(int32(s)))
	if prev != s {
		h.logger.Debug("donation state", "from", prev.String(), "to", s.String())
	}
}

// Submit runs one full cycle. It returns when the cycle is back to Idle.
// A submit while another cycle is running is rejected with
// apperr.ErrSubmitInFlight and leaves the running cycle untouched.
func (h *Handler) Submit(ctx context.Context) (model.CycleReport, error) {
	if !h.tr.TryBegin() {
		h.notifier.Notify(MsgInFlight, notify.Info)
		return model.CycleReport{ErrorKind: apperr.Kind(apperr.ErrSubmitInFlight)}, apperr.ErrSubmitInFlight
	}

	var report model.CycleReport
	h.form.SetBusy(true)
	spinner := view.ShowLoading(h.form.Node())
	defer func() {
		view.HideLoading(spinner)
		h.form.SetBusy(false)
		h.setState(Idle)
		h.tr.Dec()
	}()

	record := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		durMS := time.Since(start).Milliseconds()

		st := "ok"
		detail := ""
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				st = "canceled"
			} else {
				st = "error"
				detail = apperr.Kind(err)
			}
		}
		report.Steps = append(report.Steps, model.StepResult{
			Name:       name,
			Status:     st,
			DurationMS: durMS,
			Detail:     detail,
		})
		return err
	}

	err := h.run(ctx, &report, record)
	report.ErrorKind = apperr.Kind(err)
	if h.onCycle != nil {
		h.onCycle(report)
	}
	return report, err
}

func (h *Handler) run(ctx context.Context, report *model.CycleReport, record func(string, func() error) error) error {
	h.setState(Validating)
	err := record("validate", func() error {
		ok := h.validator.Validate(Rules(h.settings.MinAmount))
		h.validator.ShowErrors()
		if !ok {
			return apperr.ErrValidation
		}
		return nil
	})
	if err != nil {
		return err
	}

	input := h.input()

	h.setState(CreatingOrder)
	var (
		order model.OrderResponse
		cause error
	)
	err = record("create_order", func() error {
		order, cause = h.api.CreateOrder(ctx, input)
		if cause == nil && !order.Success {
			msg := order.Message
			if msg == "" {
				msg = MsgOrderFallback
			}
			cause = errors.New(msg)
		}
		if cause != nil {
			return fmt.Errorf("%w: %w", apperr.ErrOrderFailed, cause)
		}
		return nil
	})
	if err != nil {
		h.notifier.Notify(apperr.Message(cause), notify.Error)
		return err
	}
	report.OrderID = order.OrderID
	report.Amount = order.Amount
	h.logger.Info("order created",
		"order_id", order.OrderID,
		"amount", format.CurrencyString(input.Amount),
	)

	h.setState(AwaitingWidgetResult)
	var paid model.PaymentResult
	err = record("checkout", func() error {
		var err error
		paid, err = h.checkout(ctx, order, input)
		return err
	})
	if err != nil {
		var f *widgetFailure
		switch {
		case errors.As(err, &f):
			h.notifier.Notify(MsgPaymentFailed+f.Description, notify.Error)
		case ctx.Err() == nil:
			h.notifier.Notify(err.Error(), notify.Error)
		}
		return err
	}
	report.PaymentID = paid.RazorpayPaymentID

	h.setState(VerifyingPayment)
	err = record("verify_payment", func() error {
		resp, err := h.api.VerifyPayment(ctx, model.VerifyRequest{PaymentResult: paid, DonationInput: input})
		if err != nil {
			return fmt.Errorf("%w: %w", apperr.ErrVerificationFailed, err)
		}
		if !resp.Success {
			return fmt.Errorf("%w: %s", apperr.ErrVerificationFailed, resp.Message)
		}
		return nil
	})
	if err != nil {
		h.logger.Error("payment verification failed", "order_id", order.OrderID, "err", err)
		h.notifier.Notify(MsgVerificationFailed, notify.Error)
		return err
	}

	h.notifier.Notify(MsgThankYou, notify.Success)
	h.form.Reset()
	time.AfterFunc(h.settings.ReloadDelay, h.reload)
	return nil
}

func (h *Handler) input() model.DonationInput {
	return model.DonationInput{
		Name:      h.form.Value("name"),
		Email:     h.form.Value("email"),
		BatchYear: h.form.Value("batch_year"),
		Amount:    h.form.Value("amount"),
		Message:   h.form.Value("message"),
	}
}

type widgetFailure struct {
	checkout.Failure
}

func (f *widgetFailure) Error() string {
	return "payment failed: " + f.Description
}

func (f *widgetFailure) Unwrap() error { return apperr.ErrPaymentFailed }

type outcome struct {
	result model.PaymentResult
	err    error
}

// checkout opens the widget and waits for the first of success, failure
// or ctx being done.
func (h *Handler) checkout(ctx context.Context, order model.OrderResponse, in model.DonationInput) (model.PaymentResult, error) {
	done := make(chan outcome, 1)
	deliver := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	w, err := h.widgets(checkout.Options{
		Key:         h.settings.Key,
		Amount:      order.Amount,
		Currency:    h.settings.Currency,
		Name:        h.settings.Brand,
		Description: h.settings.Description,
		OrderID:     order.OrderID,
		Prefill:     checkout.Prefill{Name: in.Name, Email: in.Email},
		Theme:       checkout.Theme{Color: h.settings.ThemeColor},
		Handler: func(r model.PaymentResult) {
			deliver(outcome{result: r})
		},
	})
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("%w: %w", apperr.ErrPaymentFailed, err)
	}
	w.On(checkout.EventPaymentFailed, func(f checkout.Failure) {
		deliver(outcome{err: &widgetFailure{Failure: f}})
	})
	if err := w.Open(); err != nil {
		return model.PaymentResult{}, fmt.Errorf("%w: %w", apperr.ErrPaymentFailed, err)
	}

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return model.PaymentResult{}, ctx.Err()
	}
}
