package page

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alumni-network/donation-client/internal/checkout"
	"github.com/alumni-network/donation-client/internal/donation"
	"github.com/alumni-network/donation-client/internal/notify"
	"github.com/alumni-network/donation-client/internal/timing"
	"github.com/alumni-network/donation-client/internal/view"
)

const (
	KeyAttr = "data-razorpay-key"
	FormID  = "donationForm"
)

// AlertTiming controls how server-rendered alerts go away.
type AlertTiming struct {
	Delay time.Duration // until the alert fades
	Fade  time.Duration // from fade until removal
}

var DefaultAlertTiming = AlertTiming{
	Delay: 5000 * time.Millisecond,
	Fade:  300 * time.Millisecond,
}

// Deps are what Bootstrap wires onto the page.
type Deps struct {
	API      donation.Backend
	Widgets  checkout.Factory
	Notifier notify.Notifier
	Settings donation.Settings // Key is taken from the page
	Alerts   AlertTiming
	Logger   *slog.Logger
	Options  []donation.Option
}

// Page is a bootstrapped document.
type Page struct {
	Doc     *view.Document
	Key     string
	Handler *donation.Handler // nil without a key or a donation form
	Anchors []Anchor

	logger *slog.Logger
	g      *errgroup.Group
}

// Anchor is an in-page link. Target is nil when nothing has the id.
type Anchor struct {
	Link   *view.Node
	Href   string
	Target *view.Node
}

// Bootstrap initializes doc the way the page script does on load.
func Bootstrap(ctx context.Context, doc *view.Document, deps Deps) (*Page, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Alerts == (AlertTiming{}) {
		deps.Alerts = DefaultAlertTiming
	}
	logger.Info("Alumni Donation System initialized")

	g, gctx := errgroup.WithContext(ctx)
	p := &Page{Doc: doc, logger: logger, g: g}

	if el := doc.Root().QueryFirst(view.Selector{Attr: KeyAttr}); el != nil {
		p.Key, _ = el.Attr(KeyAttr)
	}
	if p.Key != "" {
		if formEl := doc.ByID(FormID); formEl != nil && formEl.Tag() == "form" {
			s := deps.Settings
			s.Key = p.Key
			opts := append([]donation.Option{donation.WithLogger(logger)}, deps.Options...)
			h, err := donation.New(view.NewForm(formEl), deps.API, deps.Widgets, deps.Notifier, s, opts...)
			if err != nil {
				return nil, err
			}
			p.Handler = h
		}
	}

	for _, a := range doc.Query(view.Selector{Tag: "a", Attr: "href", AttrPrefix: "#"}) {
		href, _ := a.Attr("href")
		anchor := Anchor{Link: a, Href: href}
		if id := strings.TrimPrefix(href, "#"); id != "" {
			anchor.Target = doc.ByID(id)
		}
		p.Anchors = append(p.Anchors, anchor)
	}

	for _, alert := range doc.Query(view.Selector{Class: "alert"}) {
		alert := alert
		g.Go(func() error {
			if timing.SleepOrDone(gctx, deps.Alerts.Delay) != nil {
				return nil
			}
			alert.SetAttr("style", "opacity: 0")
			if timing.SleepOrDone(gctx, deps.Alerts.Fade) != nil {
				return nil
			}
			alert.Remove()
			return nil
		})
	}

	logger.Debug("page bootstrapped",
		"handler", p.Handler != nil,
		"anchors", len(p.Anchors),
	)
	return p, nil
}

// Follow resolves an in-page link by href. It returns nil, doing nothing,
// when the link or its target is missing.
func (p *Page) Follow(href string) *view.Node {
	for _, a := range p.Anchors {
		if a.Href == href && a.Target != nil {
			p.logger.Debug("scroll", "target", a.Target.ID())
			return a.Target
		}
	}
	return nil
}

// Wait blocks until pending alert dismissals are done or abandoned.
func (p *Page) Wait() error {
	return p.g.Wait()
}
