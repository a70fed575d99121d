package file

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/praskarnam/DSynth/pkg/schema"
	"github.com/praskarnam/DSynth/pkg/store"
)

type schemaStore struct {
	fs *FileStore
}

func (s *schemaStore) List(ctx context.Context) ([]*schema.Schema, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	return slices.Clone(nonNil(s.fs.schemas)), nil
}

func (s *schemaStore) Get(ctx context.Context, id string) (*schema.Schema, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.fs.schemas[i], nil
	}
	return nil, fmt.Errorf("schema %q: %w", id, store.ErrNotFound)
}

func (s *schemaStore) Save(ctx context.Context, sc *schema.Schema) error {
	if sc == nil || strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("%w: schema name is required", store.ErrInvalid)
	}

	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.fs.cfg.ReadOnly {
		return store.ErrReadOnly
	}

	now := s.fs.now()
	if sc.ID == "" {
		sc.ID = newID()
	}
	if sc.SchemaType == "" {
		sc.SchemaType = schema.TypeJSON
	}
	sc.UpdatedAt = &now

	prev := slices.Clone(s.fs.schemas)
	if i := s.index(sc.ID); i >= 0 {
		sc.CreatedAt = s.fs.schemas[i].CreatedAt
		s.fs.schemas[i] = sc
	} else {
		if sc.CreatedAt == nil {
			sc.CreatedAt = &now
		}
		s.fs.schemas = append(s.fs.schemas, sc)
	}
	if err := s.fs.saveSchemasLocked(); err != nil {
		s.fs.schemas = prev
		return err
	}
	s.fs.log.Debug("schema saved", "id", sc.ID, "name", sc.Name)
	return nil
}

func (s *schemaStore) Delete(ctx context.Context, id string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.fs.cfg.ReadOnly {
		return store.ErrReadOnly
	}

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("schema %q: %w", id, store.ErrNotFound)
	}
	prev := slices.Clone(s.fs.schemas)
	s.fs.schemas = slices.Delete(s.fs.schemas, i, i+1)
	if err := s.fs.saveSchemasLocked(); err != nil {
		s.fs.schemas = prev
		return err
	}
	return nil
}

func (s *schemaStore) Search(ctx context.Context, query string) ([]*schema.Schema, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*schema.Schema, 0)
	for _, sc := range s.fs.schemas {
		if q == "" ||
			strings.Contains(strings.ToLower(sc.Name), q) ||
			strings.Contains(strings.ToLower(sc.Description), q) {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *schemaStore) Count(ctx context.Context) (int, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	return len(s.fs.schemas), nil
}

func (s *schemaStore) index(id string) int {
	return slices.IndexFunc(s.fs.schemas, func(sc *schema.Schema) bool {
		return sc.ID == id
	})
}
