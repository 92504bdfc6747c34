package service

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"
)

// NewHTTPClient builds the HTTP client used for RBAC calls.
//
// When caPath is set the server certificate is verified against that PEM bundle only;
// otherwise the system trust store is used. A zero timeout leaves the transport default.
func NewHTTPClient(caPath string, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	if caPath != "" {
		pool, err := loadCertPool(caPath)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig.RootCAs = pool
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

// loadCertPool reads a PEM bundle into a fresh certificate pool.
func loadCertPool(caPath string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(caPath) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read tls ca bundle %q: %w", caPath, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in tls ca bundle %q", caPath)
	}
	return pool, nil
}
