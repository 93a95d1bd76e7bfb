package pageinsight

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// existenceChecker reports whether a resource answers 200 OK.
type existenceChecker interface {
	Exists(ctx context.Context, url string) bool
}

// Prober checks for the presence of well-known resources such as robots.txt
// with lightweight GET requests.
type Prober struct {
	client    *http.Client
	userAgent string
}

// NewProber returns a Prober with its own timeout that follows redirects
// under the same policy as the fetcher and blocks private/reserved IP ranges
// unless allowed.
func NewProber(cfg TransportConfig) *Prober {
	return newProber(cfg, newTransport(cfg.AllowPrivateNetworks))
}

func newProber(cfg TransportConfig, transport http.RoundTripper) *Prober {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Prober{
		userAgent: ua,
		client: &http.Client{
			Timeout:       cfg.Timeout,
			Transport:     transport,
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

// Exists performs a GET and returns true only for a 200 response. Any
// transport error counts as absent.
func (p *Prober) Exists(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// wellKnownURL resolves an absolute path such as /robots.txt against page.
func wellKnownURL(page *url.URL, path string) string {
	return page.ResolveReference(&url.URL{Path: path}).String()
}

// Resolver looks up host addresses. *net.Resolver implements it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// timeLookup measures one host resolution. Failures yield 0.
func timeLookup(ctx context.Context, r Resolver, host string) time.Duration {
	if r == nil || host == "" {
		return 0
	}
	start := time.Now()
	if _, err := r.LookupHost(ctx, host); err != nil {
		return 0
	}
	return time.Since(start)
}
