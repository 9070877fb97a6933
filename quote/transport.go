package quote

import (
	"net/http"

	"github.com/rs/zerolog"
)

// loggingTransport logs every round trip at debug level.
type loggingTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

// RoundTrip implements the http.RoundTripper interface.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Err(err).Msg("http request failed")
		return nil, err
	}
	t.logger.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http request")
	return resp, nil
}

// newLoggingClient wraps the client transport, the client itself is not modified.
func newLoggingClient(client *http.Client, logger zerolog.Logger) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c := *client
	c.Transport = &loggingTransport{base: base, logger: logger}
	return &c
}
