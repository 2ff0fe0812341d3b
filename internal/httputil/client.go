package httputil

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Altus/1.0 (+https://github.com/lox/altus)"
)

// NewClient returns an HTTP client that stamps every request with the
// Altus User-Agent. A zero timeout leaves the transport to decide.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: http.DefaultTransport, agent: DefaultUserAgent},
	}
}

type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	return t.base.RoundTrip(req)
}
