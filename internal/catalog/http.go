package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const defaultTimeout = 12 * time.Second

// HTTP fetches a JSON catalog from a URL.
type HTTP struct {
	URL        string
	HTTPClient *http.Client
}

func (c *HTTP) Load(ctx context.Context) ([]model.Product, error) {
	url := strings.TrimSpace(c.URL)
	if url == "" {
		return nil, fmt.Errorf("missing catalog URL")
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute catalog request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}
	return decodeJSON(body)
}

// Resolve picks a provider for a configured source: "embedded" (or empty),
// an http(s) URL, or a file path.
func Resolve(source string, timeout time.Duration) Provider {
	source = strings.TrimSpace(source)
	switch {
	case source == "" || strings.EqualFold(source, "embedded"):
		return Embedded{}
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		return &HTTP{URL: source, HTTPClient: &http.Client{Timeout: timeout}}
	default:
		return File{Path: source}
	}
}
