// Package middleware holds http.RoundTripper wrappers for the backend client.
package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-Id"

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type countingBody struct {
	io.ReadCloser
	bytes int64
	once  sync.Once
	done  func(bytes int64)
}

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.bytes += int64(n)
	return n, err
}

func (b *countingBody) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(func() { b.done(b.bytes) })
	return err
}

// Logging stamps every outgoing request with an X-Request-Id (unless the
// caller set one) and logs one line per call once the response body is
// closed. Transport failures are logged immediately.
func Logging(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r = r.Clone(r.Context())
			r.Header.Set(RequestIDHeader, requestID)
		}

		start := time.Now()
		resp, err := next.RoundTrip(r)
		if err != nil {
			logger.Error("request failed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
				"err", err,
			)
			return nil, err
		}

		resp.Body = &countingBody{
			ReadCloser: resp.Body,
			done: func(bytes int64) {
				logger.Info("request",
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"status", resp.StatusCode,
					"bytes", bytes,
					"duration", time.Since(start),
				)
			},
		}
		return resp, nil
	})
}
