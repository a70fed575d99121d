// Package generator produces mock records for a schema.
//
// Every field of every record is generated from its own strategy: an
// expression override, a registered custom type, or the builtin rule for the
// field's kind. A field that cannot be generated gets a per-kind default
// instead of failing the record. Records are produced in parallel; each one
// draws from a deterministic sub-stream of the session seed, so a seeded
// call returns the same batch regardless of scheduling.
package generator

import (
	"context"
	"log/slog"
	mathrand "math/rand/v2"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/praskarnam/DSynth/pkg/expression"
	"github.com/praskarnam/DSynth/pkg/faker"
	"github.com/praskarnam/DSynth/pkg/logging"
	"github.com/praskarnam/DSynth/pkg/registry"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// Generator is the generation engine. It is safe for concurrent use.
type Generator struct {
	// mu orders type-registry mutation against in-flight Generate calls.
	mu       sync.RWMutex
	registry *registry.Registry
	interp   *expression.Interpreter
	log      *slog.Logger
	workers  int
	now      func() time.Time

	seedMu sync.Mutex
	seed   *uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		g.log = logging.OrNop(log)
	}
}

// WithWorkers bounds the number of records generated concurrently.
// Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithClock sets the clock used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRegistry uses reg instead of a fresh empty registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(g *Generator) {
		if reg != nil {
			g.registry = reg
		}
	}
}

// New creates a Generator with an empty type registry and no seed.
func New(opts ...Option) *Generator {
	g := &Generator{
		registry: registry.New(),
		log:      logging.Nop(),
		workers:  runtime.GOMAXPROCS(0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.interp = expression.New(expression.WithClock(g.now))
	return g
}

// SetSeed makes subsequent Generate calls deterministic.
func (g *Generator) SetSeed(n int64) {
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	s := uint64(n)
	g.seed = &s
}

// ClearSeed returns the generator to unseeded operation.
func (g *Generator) ClearSeed() {
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	g.seed = nil
}

// Seed returns the active seed, if any.
func (g *Generator) Seed() (int64, bool) {
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	if g.seed == nil {
		return 0, false
	}
	return int64(*g.seed), true
}

// sessionSeed returns the active seed or a fresh one.
func (g *Generator) sessionSeed() uint64 {
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	if g.seed != nil {
		return *g.seed
	}
	return mathrand.Uint64()
}

// Generate produces count records for s. count <= 0 yields an empty batch.
// Field failures never fail the call; the only error is ctx's.
func (g *Generator) Generate(ctx context.Context, s *schema.Schema, count int) ([]Record, error) {
	return g.GenerateRange(ctx, s, 0, count, nil)
}

// GenerateRange produces records offset..offset+count-1 of the batch that
// seed identifies. A nil seed uses the generator's seed, or a fresh one
// when none is set. Record i is the same whichever window it is drawn in,
// so seeded pages of one batch are consistent with each other.
func (g *Generator) GenerateRange(ctx context.Context, s *schema.Schema, offset, count int, seed *int64) ([]Record, error) {
	if count <= 0 || s == nil {
		return []Record{}, nil
	}
	offset = max(offset, 0)

	g.mu.RLock()
	defer g.mu.RUnlock()

	base := g.sessionSeed()
	if seed != nil {
		base = uint64(*seed)
	}
	records := make([]Record, count)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := 0; i < count; i++ {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			records[i] = g.record(s, g.recordFaker(base, uint64(offset+i)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.log.Debug("generated records", "schema", s.Name, "offset", offset, "count", count)
	return records, nil
}

// recordFaker returns the provider for one record's sub-stream.
func (g *Generator) recordFaker(base, index uint64) *faker.Faker {
	fk := faker.NewWithSource(mathrand.NewPCG(base, index))
	fk.SetClock(g.now)
	return fk
}

func (g *Generator) record(s *schema.Schema, fk *faker.Faker) Record {
	r := Record{entries: make([]Entry, 0, len(s.Fields))}
	for i := range s.Fields {
		f := &s.Fields[i]
		r.Set(f.Name, g.fieldValue(f, fk))
	}
	return r
}

// TestDefinition reports whether def's expression evaluates. The registry
// is not touched.
func (g *Generator) TestDefinition(def registry.Definition) bool {
	_, err := g.SampleDefinition(def)
	return err == nil
}

// SampleDefinition evaluates def's expression once and returns the value.
func (g *Generator) SampleDefinition(def registry.Definition) (any, error) {
	v, err := g.interp.Evaluate(def.Expression, g.recordFaker(g.sessionSeed(), 0))
	if err != nil {
		g.log.Debug("custom type sample failed", "name", def.Name, "error", err)
		return nil, err
	}
	return v, nil
}

// Register adds or replaces a custom type.
func (g *Generator) Register(def registry.Definition) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Register(def)
}

// Unregister removes a custom type. Unknown names are ignored.
func (g *Generator) Unregister(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Unregister(name)
}

// ClearTypes removes every custom type.
func (g *Generator) ClearTypes() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Clear()
}

// ReplaceTypes swaps the registry contents for defs in one step.
func (g *Generator) ReplaceTypes(defs []registry.Definition) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Replace(defs)
}

// TypeNames lists the registered custom types, sorted.
func (g *Generator) TypeNames() []string {
	return g.registry.Names()
}
