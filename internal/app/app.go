// Package app wires configuration, the backend client and the page
// together for one donation run.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alumni-network/donation-client/internal/api"
	"github.com/alumni-network/donation-client/internal/apperr"
	"github.com/alumni-network/donation-client/internal/checkout"
	"github.com/alumni-network/donation-client/internal/clipboard"
	"github.com/alumni-network/donation-client/internal/config"
	"github.com/alumni-network/donation-client/internal/donation"
	"github.com/alumni-network/donation-client/internal/middleware"
	"github.com/alumni-network/donation-client/internal/model"
	"github.com/alumni-network/donation-client/internal/notify"
	"github.com/alumni-network/donation-client/internal/page"
	"github.com/alumni-network/donation-client/internal/timing"
	"github.com/alumni-network/donation-client/internal/view"
)

var ErrNoDonationForm = errors.New("page has no donation form or checkout key")

type App struct {
	Config config.Config
	API    *api.Client

	http      *http.Client
	widgets   checkout.Factory
	clipboard clipboard.Writer
	banners   notify.Timing
	logger    *slog.Logger
}

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithWidgets replaces the sandbox checkout.
func WithWidgets(f checkout.Factory) Option {
	return func(a *App) { a.widgets = f }
}

// WithHTTPClient sets the client used for the page and the backend.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) { a.http = hc }
}

func WithClipboard(w clipboard.Writer) Option {
	return func(a *App) { a.clipboard = w }
}

// WithBannerTiming overrides notify.DefaultTiming.
func WithBannerTiming(t notify.Timing) Option {
	return func(a *App) { a.banners = t }
}

func New(cfg config.Config, opts ...Option) *App {
	a := &App{
		Config:  cfg,
		logger:  slog.Default(),
		banners: notify.DefaultTiming,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.http == nil {
		a.http = &http.Client{
			Transport: middleware.Logging(http.DefaultTransport, a.logger),
			Timeout:   cfg.RequestTimeout,
		}
	}
	if a.widgets == nil {
		a.widgets = checkout.Sandbox{Secret: cfg.KeySecret}.Factory()
	}
	a.API = api.New(cfg.APIBaseURL,
		api.WithHTTPClient(a.http),
		api.WithLogger(a.logger),
		api.WithMaxInFlight(cfg.MaxInFlight),
	)
	return a
}

// Input is what the donor would type into the form. Empty fields keep
// whatever the page pre-filled.
type Input struct {
	model.DonationInput
	Copy bool // copy the payment id to the clipboard on success
}

// Result is the outcome of Run.
type Result struct {
	Report   model.CycleReport
	Banners  []notify.Notification
	Reloaded bool
}

// Run loads the page at src, bootstraps it and submits the donation form once.
func (a *App) Run(ctx context.Context, src string, in Input) (Result, error) {
	var res Result

	doc, err := page.Load(ctx, a.http, src)
	if err != nil {
		return res, err
	}

	var mu sync.Mutex
	board := notify.NewBoard(doc,
		notify.WithTiming(a.banners),
		notify.WithLogger(a.logger),
		notify.WithListener(func(n notify.Notification) {
			mu.Lock()
			res.Banners = append(res.Banners, n)
			mu.Unlock()
		}),
	)

	reloaded := make(chan *view.Document, 1)
	reload := timing.Debounce(func(string) {
		fresh, err := page.Load(context.WithoutCancel(ctx), a.http, src)
		if err != nil {
			a.logger.Warn("page reload failed", "err", err)
			fresh = nil
		}
		select {
		case reloaded <- fresh:
		default:
		}
	}, 10*time.Millisecond)

	p, err := page.Bootstrap(ctx, doc, page.Deps{
		API:      a.API,
		Widgets:  a.widgets,
		Notifier: board,
		Settings: a.settings(),
		Logger:   a.logger,
		Options:  []donation.Option{donation.WithReload(func() { reload(src) })},
	})
	if err != nil {
		return res, err
	}
	if p.Handler == nil {
		return res, ErrNoDonationForm
	}

	form := view.NewForm(doc.ByID(page.FormID))
	for name, v := range map[string]string{
		"name":       in.Name,
		"email":      in.Email,
		"batch_year": in.BatchYear,
		"amount":     in.Amount,
		"message":    in.Message,
	} {
		if v != "" {
			form.Set(name, v)
		}
	}

	res.Report, err = p.Handler.Submit(ctx)
	if err != nil {
		return a.snapshot(&mu, &res), err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case fresh := <-reloaded:
			mu.Lock()
			res.Reloaded = fresh != nil
			mu.Unlock()
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})
	if in.Copy {
		paymentID := res.Report.PaymentID
		g.Go(func() error {
			// a failed copy is already on screen and in the log
			_ = clipboard.New(a.clipboard, board, a.logger).CopySync(paymentID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return a.snapshot(&mu, &res), fmt.Errorf("after donation: %w", err)
	}
	return a.snapshot(&mu, &res), nil
}

func (a *App) snapshot(mu *sync.Mutex, res *Result) Result {
	mu.Lock()
	defer mu.Unlock()
	out := *res
	out.Banners = append([]notify.Notification(nil), res.Banners...)
	return out
}

// SendBulkEmail forwards an admin mail request to the backend.
func (a *App) SendBulkEmail(ctx context.Context, req model.BulkEmailRequest) (model.BulkEmailResponse, error) {
	switch req.Type {
	case "batch":
		if req.BatchYear == "" {
			return model.BulkEmailResponse{}, fmt.Errorf("%w: batch year is required", apperr.ErrValidation)
		}
	case "all":
	case "custom":
		if len(req.Emails) == 0 {
			return model.BulkEmailResponse{}, fmt.Errorf("%w: at least one email is required", apperr.ErrValidation)
		}
	default:
		return model.BulkEmailResponse{}, fmt.Errorf("%w: unknown type %q", apperr.ErrValidation, req.Type)
	}
	if req.Subject == "" || req.Message == "" {
		return model.BulkEmailResponse{}, fmt.Errorf("%w: subject and message are required", apperr.ErrValidation)
	}

	resp, err := a.API.SendBulkEmail(ctx, req)
	if err != nil {
		return resp, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "send failed"
		}
		return resp, errors.New(msg)
	}
	return resp, nil
}

func (a *App) settings() donation.Settings {
	c := a.Config
	return donation.Settings{
		MinAmount:   c.MinAmount,
		Currency:    c.Currency,
		Brand:       c.Brand,
		Description: c.Description,
		ThemeColor:  c.ThemeColor,
		ReloadDelay: c.ReloadDelay,
	}
}
