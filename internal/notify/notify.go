// Package notify renders transient banners into a view.Document.
//
// Each banner fades in shortly after it is created, stays visible for a
// while, fades out and then removes itself. Banners are independent: there
// is no queue, no dedup, and scheduled timers are never cancelled.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/alumni-network/donation-client/internal/view"
)

// Kind selects the banner style.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Timing controls a banner's lifecycle.
type Timing struct {
	ShowDelay time.Duration // before the "show" class is added
	Visible   time.Duration // from creation until the fade starts
	Fade      time.Duration // from fade start until removal
}

// DefaultTiming matches the page stylesheet's transitions.
var DefaultTiming = Timing{
	ShowDelay: 10 * time.Millisecond,
	Visible:   3000 * time.Millisecond,
	Fade:      300 * time.Millisecond,
}

// Notification is what listeners receive for every banner shown.
type Notification struct {
	Kind    Kind
	Message string
	At      time.Time
}

// Board attaches banners to a document's body.
type Board struct {
	doc       *view.Document
	timing    Timing
	logger    *slog.Logger
	listeners []func(Notification)
}

// Option configures a Board.
type Option func(*Board)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(b *Board) { b.timing = t }
}

// WithLogger sets the logger banners are mirrored to.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithListener registers fn to be called synchronously for every banner.
func WithListener(fn func(Notification)) Option {
	return func(b *Board) { b.listeners = append(b.listeners, fn) }
}

// NewBoard returns a Board rendering into doc.
func NewBoard(doc *view.Document, opts ...Option) *Board {
	b := &Board{
		doc:    doc,
		timing: DefaultTiming,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Notify implements Notifier.
func (b *Board) Notify(message string, kind Kind) {
	b.Show(message, kind)
}

// Show creates a banner and schedules its lifecycle. An empty kind is Info.
func (b *Board) Show(message string, kind Kind) *view.Node {
	if kind == "" {
		kind = Info
	}

	banner := b.doc.CreateElement("div")
	banner.SetAttr("class", "notification notification-"+string(kind))

	icon := b.doc.CreateElement("i")
	if kind == Success {
		icon.SetAttr("class", "fas fa-check-circle")
	} else {
		icon.SetAttr("class", "fas fa-info-circle")
	}
	text := b.doc.CreateElement("span")
	text.SetText(message)
	banner.Append(icon)
	banner.Append(text)

	b.doc.Body().Append(banner)

	level := slog.LevelInfo
	if kind == Error {
		level = slog.LevelWarn
	}
	b.logger.Log(context.Background(), level, "notification", "kind", string(kind), "message", message)

	n := Notification{Kind: kind, Message: message, At: time.Now()}
	for _, fn := range b.listeners {
		fn(n)
	}

	t := b.timing
	time.AfterFunc(t.ShowDelay, func() {
		banner.AddClass("show")
	})
	time.AfterFunc(t.Visible, func() {
		banner.RemoveClass("show")
		time.AfterFunc(t.Fade, func() {
			// Remove is a no-op if something else already detached it.
			banner.Remove()
		})
	})

	return banner
}

// Active returns the banners currently attached to the body.
func (b *Board) Active() []*view.Node {
	return b.doc.Body().Query(view.Selector{Class: "notification"})
}
