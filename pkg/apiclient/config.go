package apiclient

import (
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/metrics"
)

// FromConfig builds a client for the configured backend. Its calls are
// counted in the metrics registry.
func FromConfig(conf *configuration.Configuration) (*Client, error) {
	return New(Options{
		BaseURL:         conf.Backend.URL,
		Origin:          conf.Origin,
		Token:           conf.Backend.Token,
		Timeout:         conf.Backend.Timeout,
		CSRFPath:        conf.Backend.CSRFPath,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          conf.Logger(),
		Transport:       metrics.InstrumentBackend(nil),
	})
}
