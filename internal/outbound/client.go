// Package outbound builds HTTP clients for calls to third-party endpoints.
package outbound

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

var allowedSchemes = []string{"http", "https"}

// NewSafeClient returns a client that refuses private, loopback, link-local and metadata
// addresses, checked after DNS resolution, and only dials ports 80 and 443.
func NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	return safeurl.Client(config).Client
}

// ValidateURL is a static check of a configured endpoint. Address checks happen at dial time.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	ok := false
	for _, s := range allowedSchemes {
		if s == scheme {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("disallowed scheme: %s (allowed: %v)", scheme, allowedSchemes)
	}
	if parsed.Hostname() == "" {
		return fmt.Errorf("empty host in URL: %s", rawURL)
	}
	return nil
}
