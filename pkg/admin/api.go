package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/praskarnam/DSynth/pkg/generator"
	"github.com/praskarnam/DSynth/pkg/logging"
	"github.com/praskarnam/DSynth/pkg/store"
)

// Limits of the generation endpoints.
const (
	DefaultMaxCount = 10000
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// API exposes schemas, custom types and record generation over HTTP.
type API struct {
	store    store.Store
	gen      *generator.Generator
	log      *slog.Logger
	maxCount int
	version  string
	now      func() time.Time

	corsConfig  CORSConfig
	maxBodySize int64

	handler    http.Handler
	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	startTime  time.Time
}

// New creates an API over st and gen.
func New(st store.Store, gen *generator.Generator, opts ...Option) *API {
	a := &API{
		store:       st,
		gen:         gen,
		log:         logging.Nop(),
		maxCount:    DefaultMaxCount,
		now:         time.Now,
		corsConfig:  DefaultCORSConfig(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.startTime = a.now()

	mux := http.NewServeMux()
	a.registerRoutes(mux)
	a.handler = a.withMiddleware(mux)
	return a
}

// Handler returns the API's root handler.
func (a *API) Handler() http.Handler {
	return a.handler
}

// SyncTypes loads the store's active custom types into the generator,
// replacing whatever it held.
func (a *API) SyncTypes(ctx context.Context) error {
	types, err := a.store.CustomTypes().List(ctx)
	if err != nil {
		return err
	}
	defs := store.ActiveDefinitions(types)
	a.gen.ReplaceTypes(defs)
	a.log.Debug("custom types synced", "count", len(defs))
	return nil
}

// Start listens on addr and serves in the background. Listen errors are
// returned; serve errors are logged.
func (a *API) Start(addr string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.httpServer != nil {
		return errors.New("admin API already started")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	a.listener = ln
	a.startTime = a.now()
	a.httpServer = &http.Server{
		Handler:      a.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	srv := a.httpServer

	a.log.Info("starting HTTP API", "addr", ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP API error", "error", err)
		}
	}()
	return nil
}

// Addr returns the listening address, or "" before Start.
func (a *API) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (a *API) Stop(ctx context.Context) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.listener = nil
	a.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Uptime returns the server uptime in seconds.
func (a *API) Uptime() int {
	return int(a.now().Sub(a.startTime).Seconds())
}
