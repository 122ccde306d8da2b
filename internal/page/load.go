package page

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alumni-network/donation-client/internal/view"
)

// Fetch loads and parses the page at url.
func Fetch(ctx context.Context, client *http.Client, url string) (*view.Document, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Load reads src from the network when it is an http(s) URL and from the
// filesystem otherwise.
func Load(ctx context.Context, client *http.Client, src string) (*view.Document, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return Fetch(ctx, client, src)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
