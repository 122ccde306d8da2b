package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alumni-network/donation-client/internal/apperr"
	"github.com/alumni-network/donation-client/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateOrderSendsInputVerbatim(t *testing.T) {
	t.Parallel()

	var got model.DonationInput
	var contentType, requestID, method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"order_id":"order_1","amount":50000}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(quietLogger()))
	in := model.DonationInput{Name: "Asha", Email: "asha@example.com", BatchYear: "2012", Amount: "500"}

	resp, err := c.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if method != http.MethodPost || path != PathCreateOrder {
		t.Fatalf("expected POST %s, got %s %s", PathCreateOrder, method, path)
	}
	if contentType != "application/json" {
		t.Fatalf("expected application/json, got %q", contentType)
	}
	if requestID == "" {
		t.Fatalf("expected a request id header")
	}
	if got != in {
		t.Fatalf("expected %+v, got %+v", in, got)
	}
	if !resp.Success || resp.OrderID != "order_1" || resp.Amount != 50000 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestRequestNon2xx(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server message", status: http.StatusBadRequest, body: `{"message":"Amount too low"}`, wantMsg: "Amount too low"},
		{name: "no message", status: http.StatusInternalServerError, body: `{}`, wantMsg: "Request failed"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: "Request failed"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, WithLogger(quietLogger()))
			_, err := c.Request(context.Background(), "/x", RequestOptions{Method: http.MethodPost})

			var re *apperr.RequestError
			if !errors.As(err, &re) {
				t.Fatalf("expected RequestError, got %v", err)
			}
			if re.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, re.Status)
			}
			if re.Message != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, re.Message)
			}
		})
	}
}

func TestRequestDecodeErrorPropagates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(quietLogger()))
	_, err := c.Request(context.Background(), "/x", RequestOptions{})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var re *apperr.RequestError
	if errors.As(err, &re) {
		t.Fatalf("expected plain decode error, got RequestError")
	}
}

func TestRequestCallerHeadersWin(t *testing.T) {
	t.Parallel()

	var contentType, requestID, extra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-Id")
		extra = r.Header.Get("X-Extra")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(quietLogger()))
	_, err := c.Request(context.Background(), "/x", RequestOptions{
		Method: http.MethodPost,
		Headers: map[string]string{
			"content-type": "text/plain",
			"X-Request-Id": "fixed",
			"X-Extra":      "1",
		},
		Body: []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if contentType != "text/plain" {
		t.Fatalf("expected text/plain, got %q", contentType)
	}
	if requestID != "fixed" {
		t.Fatalf("expected fixed, got %q", requestID)
	}
	if extra != "1" {
		t.Fatalf("expected 1, got %q", extra)
	}
}

func TestRequestNoRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(quietLogger()))
	if _, err := c.VerifyPayment(context.Background(), model.VerifyRequest{}); err == nil {
		t.Fatalf("expected error")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected 1 call, got %d", n)
	}
}

func TestRequestCanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, WithLogger(quietLogger()), WithMaxInFlight(1))
	_, err := c.Request(ctx, "/x", RequestOptions{})
	if got := apperr.Kind(err); got != "canceled" {
		t.Fatalf("expected canceled, got %q (%v)", got, err)
	}
}

func TestSendBulkEmail(t *testing.T) {
	t.Parallel()

	var got model.BulkEmailRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"sent":3,"failed":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithLogger(quietLogger()))
	resp, err := c.SendBulkEmail(context.Background(), model.BulkEmailRequest{
		Type:      "batch",
		Subject:   "Reunion",
		Message:   "See you there",
		BatchYear: "2012",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if path != PathSendEmail {
		t.Fatalf("expected %s, got %s", PathSendEmail, path)
	}
	if got.Type != "batch" || got.BatchYear != "2012" {
		t.Fatalf("unexpected body %+v", got)
	}
	if resp.Sent != 3 || resp.Failed != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}
