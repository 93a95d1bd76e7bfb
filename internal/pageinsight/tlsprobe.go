package pageinsight

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math"
	"net"
	"strings"
	"time"

	"github.com/Bahjat/site-audit/internal/model"
)

var errNoPeerCertificate = errors.New("server presented no certificate")

// certProber fetches the peer certificate of a host.
type certProber interface {
	Probe(ctx context.Context, host string) (model.Certificate, error)
}

// CertProber opens a TLS connection straight to the host, independent of
// any HTTP request, and summarizes the leaf certificate.
type CertProber struct {
	Timeout              time.Duration
	Port                 string         // defaults to 443
	RootCAs              *x509.CertPool // nil uses the system pool
	AllowPrivateNetworks bool

	now func() time.Time
}

// Probe dials host and returns the issuer, subject and expiry of its leaf
// certificate.
func (p *CertProber) Probe(ctx context.Context, host string) (model.Certificate, error) {
	port := p.Port
	if port == "" {
		port = "443"
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	dialer := &tls.Dialer{
		NetDialer: safeDialer(p.AllowPrivateNetworks),
		Config: &tls.Config{
			ServerName: host,
			RootCAs:    p.RootCAs,
			MinVersion: tls.VersionTLS12,
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return model.Certificate{}, err
	}
	defer func() { _ = conn.Close() }()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return model.Certificate{}, errNoPeerCertificate
	}
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return model.Certificate{}, errNoPeerCertificate
	}

	now := time.Now
	if p.now != nil {
		now = p.now
	}
	return summarizeCertificate(certs[0], now()), nil
}

func summarizeCertificate(cert *x509.Certificate, now time.Time) model.Certificate {
	days := int(math.Floor(cert.NotAfter.Sub(now).Hours() / 24))
	return model.Certificate{
		Issuer:        nameMap(cert.Issuer),
		Subject:       nameMap(cert.Subject),
		Expires:       cert.NotAfter.UTC().Format(time.RFC3339),
		ExpiresInDays: &days,
	}
}

// nameMap flattens a distinguished name into attribute name -> value.
func nameMap(name pkix.Name) map[string]string {
	m := make(map[string]string)
	set := func(key string, vals []string) {
		if len(vals) > 0 {
			m[key] = strings.Join(vals, ", ")
		}
	}
	set("countryName", name.Country)
	set("stateOrProvinceName", name.Province)
	set("localityName", name.Locality)
	set("organizationName", name.Organization)
	set("organizationalUnitName", name.OrganizationalUnit)
	if name.CommonName != "" {
		m["commonName"] = name.CommonName
	}
	return m
}
