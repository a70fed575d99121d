package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/praskarnam/DSynth/pkg/registry"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// Store is the main interface for data persistence.
type Store interface {
	// Lifecycle
	Open(ctx context.Context) error
	Close() error

	Schemas() SchemaStore
	CustomTypes() CustomTypeStore

	// Maintenance
	Backup(ctx context.Context, dir string) (*Snapshot, error)
	Restore(ctx context.Context, snap *Snapshot) error
	Export(ctx context.Context, dir string) (*Snapshot, error)
	Clear(ctx context.Context) error

	// DataDir returns the data directory path.
	DataDir() string
}

// Snapshot names the files written by Backup or Export, or read by Restore.
type Snapshot struct {
	SchemasPath     string    `json:"schemasPath"`
	CustomTypesPath string    `json:"customTypesPath"`
	Timestamp       time.Time `json:"timestamp"`
}

// SchemaStore handles schema persistence.
type SchemaStore interface {
	List(ctx context.Context) ([]*schema.Schema, error)
	Get(ctx context.Context, id string) (*schema.Schema, error)
	// Save inserts s, or replaces the stored schema with the same ID.
	// An empty ID is assigned.
	Save(ctx context.Context, s *schema.Schema) error
	Delete(ctx context.Context, id string) error
	// Search matches query case-insensitively against name and description.
	Search(ctx context.Context, query string) ([]*schema.Schema, error)
	Count(ctx context.Context) (int, error)
}

// CustomTypeStore handles custom type persistence.
type CustomTypeStore interface {
	List(ctx context.Context) ([]*CustomType, error)
	Get(ctx context.Context, id string) (*CustomType, error)
	GetByName(ctx context.Context, name string) (*CustomType, error)
	// Save inserts t, or replaces the stored type with the same ID. Names
	// are unique; saving a second type under a taken name is ErrDuplicate.
	Save(ctx context.Context, t *CustomType) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*CustomType, error)
	Count(ctx context.Context) (int, error)
}

// CustomType is a persisted, user-defined data type.
type CustomType struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Expression      string         `json:"expression"`
	ValidationRules map[string]any `json:"validationRules,omitempty"`
	CreatedAt       *time.Time     `json:"createdAt,omitempty"`
	TestResult      *TestResult    `json:"testResult,omitempty"`
	IsActive        bool           `json:"isActive"`
}

// TestResult records the outcome of the last self-test of a custom type.
type TestResult struct {
	Success  bool      `json:"success"`
	Sample   any       `json:"sample,omitempty"`
	Error    string    `json:"error,omitempty"`
	TestedAt time.Time `json:"testedAt"`
}

// UnmarshalJSON accepts the legacy "mvelExpression" key as an alias for
// "expression". A missing isActive defaults to true.
func (t *CustomType) UnmarshalJSON(data []byte) error {
	type plain CustomType
	aux := struct {
		*plain
		MVELExpression string `json:"mvelExpression"`
		IsActive       *bool  `json:"isActive"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.Expression == "" {
		t.Expression = aux.MVELExpression
	}
	t.IsActive = aux.IsActive == nil || *aux.IsActive
	return nil
}

// Definition returns the registry form of t.
func (t *CustomType) Definition() registry.Definition {
	return registry.Definition{Name: t.Name, Expression: t.Expression}
}

// ActiveDefinitions returns the registry definitions of the active types.
func ActiveDefinitions(types []*CustomType) []registry.Definition {
	defs := make([]registry.Definition, 0, len(types))
	for _, t := range types {
		if t.IsActive {
			defs = append(defs, t.Definition())
		}
	}
	return defs
}
