package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/praskarnam/DSynth/pkg/admin"
	"github.com/praskarnam/DSynth/pkg/config"
	"github.com/praskarnam/DSynth/pkg/generator"
	"github.com/praskarnam/DSynth/pkg/store"
	"github.com/praskarnam/DSynth/pkg/store/file"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

var (
	serveListen string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API over the data directory.

Schemas and custom types are stored in the data directory. With --watch,
edits to custom_types.json made outside the API are picked up without a
restart.

Examples:
  dsynth serve
  dsynth serve --listen 0.0.0.0:8080 --data-dir /var/lib/dsynth --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen = serveListen
		}
		if cmd.Flags().Changed("watch") {
			cfg.Watch = serveWatch
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cmd.OutOrStdout(), cfg, log)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", config.DefaultListen, "HTTP API listen address")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload custom types when custom_types.json changes")
	rootCmd.AddCommand(serveCmd)
}

// server holds the running pieces of `dsynth serve`.
type server struct {
	store   *file.FileStore
	gen     *generator.Generator
	api     *admin.API
	watcher *file.Watcher
	quit    chan struct{}
	done    chan struct{}
	log     *slog.Logger
}

func runServe(ctx context.Context, stdout io.Writer, cfg *config.Config, log *slog.Logger) error {
	srv, err := startServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "dsynth listening on http://%s\n", srv.api.Addr())

	<-ctx.Done()
	log.Info("shutting down")
	return srv.shutdown()
}

// startServer opens the store, syncs custom types into a new generator and
// starts the API (and the watcher when cfg.Watch is set).
func startServer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*server, error) {
	st := file.New(store.Config{DataDir: cfg.DataDir}, file.WithLogger(log))
	if err := st.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening data directory: %w", err)
	}

	gen := generator.New(generator.WithLogger(log), generator.WithWorkers(cfg.Generator.Workers))
	if cfg.Generator.Seed != nil {
		gen.SetSeed(*cfg.Generator.Seed)
	}

	api := admin.New(st, gen,
		admin.WithLogger(log),
		admin.WithMaxCount(cfg.Generator.MaxCount),
		admin.WithVersion(Version),
	)
	if err := api.SyncTypes(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	srv := &server{store: st, gen: gen, api: api, log: log}
	if cfg.Watch {
		srv.watcher = file.NewWatcher(st)
		events, err := srv.watcher.Start()
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("watching data directory: %w", err)
		}
		srv.quit = make(chan struct{})
		srv.done = make(chan struct{})
		go srv.applyReloads(events)
	}

	if err := api.Start(cfg.Listen); err != nil {
		srv.stopWatcher()
		_ = st.Close()
		return nil, err
	}
	return srv, nil
}

// applyReloads replaces the generator's types on every successful reload.
func (s *server) applyReloads(events <-chan file.WatchEvent) {
	defer close(s.done)
	for {
		select {
		case ev := <-events:
			if ev.Error != nil {
				continue
			}
			defs := store.ActiveDefinitions(ev.Types)
			s.gen.ReplaceTypes(defs)
			s.log.Debug("custom types applied", "count", len(defs))
		case <-s.quit:
			return
		}
	}
}

func (s *server) stopWatcher() {
	if s.watcher == nil {
		return
	}
	s.watcher.Stop()
	close(s.quit)
	<-s.done
}

func (s *server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.api.Stop(ctx)
	s.stopWatcher()
	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	return err
}
