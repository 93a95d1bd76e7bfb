package pageinsight

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(TransportConfig{Timeout: time.Second})
	if c == nil || c.client == nil {
		t.Fatal("NewHTTPClient returned an unusable client")
	}
	if c.userAgent != defaultUserAgent {
		t.Errorf("userAgent = %q, want %q", c.userAgent, defaultUserAgent)
	}
	if c.client.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", c.client.Timeout)
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "AuditTest/2.0" {
			t.Errorf("User-Agent = %q, want %q", got, "AuditTest/2.0")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Server", "nginx/1.25")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "<html><body>Hello</body></html>")
	}))
	defer ts.Close()

	c := newHTTPClient(TransportConfig{UserAgent: "AuditTest/2.0", Timeout: 5 * time.Second}, ts.Client().Transport)
	res, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if string(res.Body) != "<html><body>Hello</body></html>" {
		t.Errorf("Body = %q", res.Body)
	}
	if res.ContentType != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", res.ContentType)
	}
	if res.Header.Get("Server") != "nginx/1.25" {
		t.Errorf("Server header = %q", res.Header.Get("Server"))
	}
	if res.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", res.Elapsed)
	}
	if res.Compressed {
		t.Error("Compressed = true for an identity response")
	}
}

func TestHTTPClient_Fetch_ErrorStatusIsResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer ts.Close()

	c := newHTTPClient(TransportConfig{Timeout: 5 * time.Second}, ts.Client().Transport)
	res, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}

func TestHTTPClient_Fetch_Gzip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = zw.Write([]byte("<p>compressed</p>"))
		_ = zw.Close()
	}))
	defer ts.Close()

	c := newHTTPClient(TransportConfig{Timeout: 5 * time.Second}, ts.Client().Transport)
	res, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Compressed {
		t.Error("Compressed = false, want true")
	}
	if string(res.Body) != "<p>compressed</p>" {
		t.Errorf("Body = %q, want the decompressed text", res.Body)
	}
}

func TestHTTPClient_Fetch_BlocksLoopbackByDefault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewHTTPClient(TransportConfig{Timeout: 5 * time.Second})
	_, err := c.Fetch(context.Background(), ts.URL)
	if !errors.Is(err, errBlockedAddress) {
		t.Errorf("Fetch error = %v, want errBlockedAddress", err)
	}

	allowed := NewHTTPClient(TransportConfig{Timeout: 5 * time.Second, AllowPrivateNetworks: true})
	if _, err := allowed.Fetch(context.Background(), ts.URL); err != nil {
		t.Errorf("Fetch with private networks allowed: %v", err)
	}
}

func TestHTTPClient_Fetch_InvalidURL(t *testing.T) {
	c := NewHTTPClient(TransportConfig{Timeout: time.Second})
	if _, err := c.Fetch(context.Background(), "://bad-url"); err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestHTTPClient_Fetch_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := newHTTPClient(TransportConfig{Timeout: 5 * time.Second}, ts.Client().Transport)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx, ts.URL); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestSafeRedirectPolicy(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		via     int
		wantErr bool
	}{
		{name: "https within limit", scheme: "https", via: 3, wantErr: false},
		{name: "too many redirects", scheme: "https", via: 5, wantErr: true},
		{name: "blocked ftp scheme", scheme: "ftp", via: 0, wantErr: true},
		{name: "blocked javascript scheme", scheme: "javascript", via: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{Scheme: tt.scheme, Host: "example.com"}}
			via := make([]*http.Request, tt.via)

			err := safeRedirectPolicy(req, via)
			if (err != nil) != tt.wantErr {
				t.Errorf("safeRedirectPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsCompressed(t *testing.T) {
	tests := []struct {
		encoding string
		want     bool
	}{
		{encoding: "gzip", want: true},
		{encoding: "BR", want: true},
		{encoding: "identity", want: false},
		{encoding: "", want: false},
	}

	for _, tt := range tests {
		if got := isCompressed(tt.encoding); got != tt.want {
			t.Errorf("isCompressed(%q) = %v, want %v", tt.encoding, got, tt.want)
		}
	}
}

func TestFetchResult_BodyCapped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", maxResponseBody+100))
	}))
	defer ts.Close()

	c := newHTTPClient(TransportConfig{Timeout: 10 * time.Second}, ts.Client().Transport)
	res, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Body) != maxResponseBody {
		t.Errorf("len(Body) = %d, want %d", len(res.Body), maxResponseBody)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
}

func TestFetchResult_BodyAtLimitNotTruncated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", maxResponseBody))
	}))
	defer ts.Close()

	c := newHTTPClient(TransportConfig{Timeout: 10 * time.Second}, ts.Client().Transport)
	res, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Body) != maxResponseBody || res.Truncated {
		t.Errorf("len(Body), Truncated = %d, %v, want %d, false", len(res.Body), res.Truncated, maxResponseBody)
	}
}
