// Option functions for configuring API.

package admin

import (
	"log/slog"
	"time"

	"github.com/praskarnam/DSynth/pkg/logging"
)

// Option configures an API.
type Option func(*API)

// WithLogger sets the API's logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		a.log = logging.OrNop(log)
	}
}

// WithMaxCount caps the count accepted by the generate endpoint.
func WithMaxCount(n int) Option {
	return func(a *API) {
		if n > 0 {
			a.maxCount = n
		}
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(a *API) {
		a.version = v
	}
}

// WithCORS configures the CORS settings for the API.
// If not set, all origins are allowed.
func WithCORS(config CORSConfig) Option {
	return func(a *API) {
		a.corsConfig = config
	}
}

// WithMaxBodySize limits request bodies to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

// WithClock sets the clock used for timestamps and uptime.
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		if now != nil {
			a.now = now
		}
	}
}
