package admin

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxBodySize bounds request bodies.
const DefaultMaxBodySize = 1 << 20

// CORSConfig controls cross-origin access to the API.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// Empty, or containing "*", allows every origin.
	AllowedOrigins []string

	// AllowedMethods defaults to GET, POST, PUT, DELETE, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders defaults to Content-Type, Authorization.
	AllowedHeaders []string

	// MaxAge is how long, in seconds, a preflight result may be cached.
	// Zero means one day.
	MaxAge int
}

// DefaultCORSConfig allows every origin.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed.
func (c CORSConfig) allowOrigin(origin string) string {
	if len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*") {
		return "*"
	}
	if slices.Contains(c.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// preflightHeaders returns the fixed CORS response headers.
func (c CORSConfig) preflightHeaders() map[string]string {
	defaults := DefaultCORSConfig()
	methods := orDefault(c.AllowedMethods, defaults.AllowedMethods)
	headers := orDefault(c.AllowedHeaders, defaults.AllowedHeaders)
	maxAge := c.MaxAge
	if maxAge <= 0 {
		maxAge = defaults.MaxAge
	}
	return map[string]string{
		"Access-Control-Allow-Methods": strings.Join(methods, ", "),
		"Access-Control-Allow-Headers": strings.Join(headers, ", "),
		"Access-Control-Max-Age":       strconv.Itoa(maxAge),
	}
}

func orDefault(v, fallback []string) []string {
	if len(v) == 0 {
		return fallback
	}
	return v
}

type middleware func(http.Handler) http.Handler

// withMiddleware wraps handler. The first middleware listed is outermost.
func (a *API) withMiddleware(handler http.Handler) http.Handler {
	chain := []middleware{
		a.loggingMiddleware,
		securityHeadersMiddleware,
		a.corsMiddleware,
		a.bodyLimitMiddleware,
	}
	for _, mw := range slices.Backward(chain) {
		handler = mw(handler)
	}
	return handler
}

func (a *API) bodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, a.maxBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware answers preflight requests. A disallowed origin gets no
// CORS headers and its preflight is rejected.
func (a *API) corsMiddleware(next http.Handler) http.Handler {
	fixed := a.corsConfig.preflightHeaders()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		preflight := r.Method == http.MethodOptions

		origin := a.corsConfig.allowOrigin(r.Header.Get("Origin"))
		switch {
		case origin == "" && preflight:
			w.WriteHeader(http.StatusForbidden)
			return
		case origin != "":
			w.Header().Set("Access-Control-Allow-Origin", origin)
			for k, v := range fixed {
				w.Header().Set(k, v)
			}
			if preflight {
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *API) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
