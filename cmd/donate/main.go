package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alumni-network/donation-client/internal/app"
	"github.com/alumni-network/donation-client/internal/apperr"
	"github.com/alumni-network/donation-client/internal/checkout"
	"github.com/alumni-network/donation-client/internal/config"
	"github.com/alumni-network/donation-client/internal/format"
	"github.com/alumni-network/donation-client/internal/logger"
	"github.com/alumni-network/donation-client/internal/model"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	page    string
	input   model.DonationInput
	decline string
	copy    bool

	bulkType string
	subject  string
	body     string
	batch    string
	emails   string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("donate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.page, "page", "", "donation page URL or file (default: <api base>/)")
	fs.StringVar(&o.input.Name, "name", "", "donor name")
	fs.StringVar(&o.input.Email, "email", "", "donor email")
	fs.StringVar(&o.input.BatchYear, "batch", "", "batch year")
	fs.StringVar(&o.input.Amount, "amount", "", "amount in rupees")
	fs.StringVar(&o.input.Message, "message", "", "optional message")
	fs.StringVar(&o.decline, "decline", "", "make the sandbox checkout decline with this reason")
	fs.BoolVar(&o.copy, "copy", false, "copy the payment id to the clipboard")

	fs.StringVar(&o.bulkType, "bulk-type", "", "send a bulk email instead: batch, all or custom")
	fs.StringVar(&o.subject, "subject", "", "bulk email subject")
	fs.StringVar(&o.body, "body", "", "bulk email message")
	fs.StringVar(&o.batch, "bulk-batch", "", "batch year for -bulk-type=batch")
	fs.StringVar(&o.emails, "emails", "", "comma separated recipients for -bulk-type=custom")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, stderr)

	opts := []app.Option{app.WithLogger(log)}
	if o.decline != "" {
		opts = append(opts, app.WithWidgets(checkout.Sandbox{
			Secret:  cfg.KeySecret,
			Decline: true,
			Reason:  o.decline,
		}.Factory()))
	}
	a := app.New(cfg, opts...)

	if o.bulkType != "" {
		return sendBulk(ctx, a, o, stdout)
	}

	src := o.page
	if src == "" {
		if cfg.APIBaseURL == "" {
			return errors.New("-page or DONATION_API_BASE_URL is required")
		}
		src = cfg.APIBaseURL + "/"
	}

	res, err := a.Run(ctx, src, app.Input{DonationInput: o.input, Copy: o.copy})
	for _, b := range res.Banners {
		fmt.Fprintf(stdout, "[%s] %s\n", b.Kind, b.Message)
	}
	for _, s := range res.Report.Steps {
		line := fmt.Sprintf("%-15s %-8s %5dms", s.Name, s.Status, s.DurationMS)
		if s.Detail != "" {
			line += " " + s.Detail
		}
		fmt.Fprintln(stdout, line)
	}
	if res.Report.PaymentID != "" {
		fmt.Fprintf(stdout, "order %s payment %s\n", res.Report.OrderID, res.Report.PaymentID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", apperr.Kind(err), err)
	}
	fmt.Fprintf(stdout, "donated %s on %s\n",
		format.Money(cfg.Unit(), float64(res.Report.Amount)/100),
		format.Date(time.Now().Format(time.RFC3339)),
	)
	return nil
}

func sendBulk(ctx context.Context, a *app.App, o options, stdout io.Writer) error {
	req := model.BulkEmailRequest{
		Type:      o.bulkType,
		Subject:   o.subject,
		Message:   o.body,
		BatchYear: o.batch,
	}
	for _, e := range strings.Split(o.emails, ",") {
		if e = strings.TrimSpace(e); e != "" {
			req.Emails = append(req.Emails, e)
		}
	}

	resp, err := a.SendBulkEmail(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "sent %d, failed %d\n", resp.Sent, resp.Failed)
	return nil
}
