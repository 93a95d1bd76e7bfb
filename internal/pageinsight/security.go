package pageinsight

import (
	"net/http"
	"strings"

	"github.com/Bahjat/site-audit/internal/model"
)

// AnalyzeSecurity reports HTTPS use, protective response headers and a
// coarse mixed-content signal. cert is the outcome of the separate TLS
// probe and is empty for plain HTTP pages.
func AnalyzeSecurity(p *Page, cert model.Certificate) model.SecurityAnalysis {
	isHTTPS := p.URL.Scheme == "https"
	h := p.Result.Header

	return model.SecurityAnalysis{
		HTTPS:          isHTTPS,
		SSLCertificate: cert,
		SecurityHeaders: model.SecurityHeaders{
			StrictTransportSecurity: headerValue(h, "Strict-Transport-Security"),
			ContentSecurityPolicy:   headerValue(h, "Content-Security-Policy"),
			XFrameOptions:           headerValue(h, "X-Frame-Options"),
			XContentTypeOptions:     headerValue(h, "X-Content-Type-Options"),
		},
		MixedContent: isHTTPS && strings.Contains(p.Text, "http://") && strings.Contains(p.Text, "https://"),
	}
}

// headerValue returns the first value of key, or nil when the header is absent.
func headerValue(h http.Header, key string) *string {
	vals := h.Values(key)
	if len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

// certificateError is the certificate field reported when the TLS probe fails.
func certificateError(err error) model.Certificate {
	return model.Certificate{Error: err.Error()}
}
