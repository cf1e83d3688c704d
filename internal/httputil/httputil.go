// Package httputil provides HTTP client construction shared by the
// resolver and the CLI.
package httputil

import (
	"crypto/tls"
	"net/http"
	"time"
)

// RequestTimeout is the default timeout for document fetches.
const RequestTimeout = 30 * time.Second

// NewClient creates an HTTP client with the default timeout. When insecure
// is true, TLS certificate verification is disabled; only use this for
// testing or internal servers with self-signed certificates.
func NewClient(insecure bool) *http.Client {
	client := &http.Client{Timeout: RequestTimeout}
	if insecure {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
				MinVersion:         tls.VersionTLS12,
			},
		}
	}
	return client
}
