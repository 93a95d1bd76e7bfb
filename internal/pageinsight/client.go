package pageinsight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchResult is the outcome of one HTTP GET. It is never modified after
// the fetch returns.
type FetchResult struct {
	URL         string
	FinalURL    string
	StatusCode  int
	Elapsed     time.Duration // until response headers arrived
	Header      http.Header
	Body        []byte
	ContentType string
	Compressed  bool
	Truncated   bool // body cut at maxResponseBody
}

// Fetcher defines how the engine retrieves a page. Any HTTP status is a
// result; only transport failures are errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// TransportConfig configures the outbound HTTP clients.
type TransportConfig struct {
	UserAgent            string
	Timeout              time.Duration
	AllowPrivateNetworks bool
}

// HTTPClient implements Fetcher using a real HTTP client.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

const (
	maxRedirects     = 5
	defaultUserAgent = "SiteAuditBot/1.0"
	// Limit response bodies to 10 MB to prevent memory exhaustion from
	// extremely large or infinite responses.
	maxResponseBody = 10 << 20
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// NewHTTPClient returns a Fetcher backed by an http.Client with the configured
// timeout, a dedicated transport that blocks connections to private/reserved
// IP ranges unless allowed, and redirect validation that prevents SSRF via
// redirect chains.
func NewHTTPClient(cfg TransportConfig) *HTTPClient {
	return newHTTPClient(cfg, newTransport(cfg.AllowPrivateNetworks))
}

func newHTTPClient(cfg TransportConfig, transport http.RoundTripper) *HTTPClient {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &HTTPClient{
		userAgent: ua,
		client: &http.Client{
			Timeout:       cfg.Timeout,
			Transport:     transport,
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

func newTransport(allowPrivate bool) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         safeDialer(allowPrivate).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxConnsPerHost:     10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Fetch retrieves the page at the given URL and reads its whole body.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	elapsed := time.Since(start)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	truncated := len(body) > maxResponseBody
	if truncated {
		body = body[:maxResponseBody]
	}

	return &FetchResult{
		URL:         targetURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		Elapsed:     elapsed,
		Header:      resp.Header,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Compressed:  resp.Uncompressed || isCompressed(resp.Header.Get("Content-Encoding")),
		Truncated:   truncated,
	}, nil
}

func isCompressed(encoding string) bool {
	encoding = strings.ToLower(encoding)
	for _, enc := range []string{"gzip", "br", "deflate", "zstd"} {
		if strings.Contains(encoding, enc) {
			return true
		}
	}
	return false
}
