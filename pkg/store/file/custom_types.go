package file

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/praskarnam/DSynth/pkg/store"
)

type customTypeStore struct {
	fs *FileStore
}

func (s *customTypeStore) List(ctx context.Context) ([]*store.CustomType, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	return slices.Clone(nonNil(s.fs.types)), nil
}

func (s *customTypeStore) Get(ctx context.Context, id string) (*store.CustomType, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.fs.types[i], nil
	}
	return nil, fmt.Errorf("custom type %q: %w", id, store.ErrNotFound)
}

func (s *customTypeStore) GetByName(ctx context.Context, name string) (*store.CustomType, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	if i := s.indexByName(name); i >= 0 {
		return s.fs.types[i], nil
	}
	return nil, fmt.Errorf("custom type %q: %w", name, store.ErrNotFound)
}

func (s *customTypeStore) Save(ctx context.Context, t *store.CustomType) error {
	if t == nil || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: custom type name is required", store.ErrInvalid)
	}
	if strings.TrimSpace(t.Expression) == "" {
		return fmt.Errorf("%w: custom type expression is required", store.ErrInvalid)
	}

	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.fs.cfg.ReadOnly {
		return store.ErrReadOnly
	}

	if j := s.indexByName(t.Name); j >= 0 && s.fs.types[j].ID != t.ID {
		return fmt.Errorf("custom type %q: %w", t.Name, store.ErrDuplicate)
	}
	if t.ID == "" {
		t.ID = newID()
	}

	prev := slices.Clone(s.fs.types)
	if i := s.index(t.ID); i >= 0 {
		t.CreatedAt = s.fs.types[i].CreatedAt
		s.fs.types[i] = t
	} else {
		if t.CreatedAt == nil {
			now := s.fs.now()
			t.CreatedAt = &now
		}
		s.fs.types = append(s.fs.types, t)
	}
	if err := s.fs.saveTypesLocked(); err != nil {
		s.fs.types = prev
		return err
	}
	s.fs.log.Debug("custom type saved", "id", t.ID, "name", t.Name)
	return nil
}

func (s *customTypeStore) Delete(ctx context.Context, id string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.fs.cfg.ReadOnly {
		return store.ErrReadOnly
	}

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("custom type %q: %w", id, store.ErrNotFound)
	}
	prev := slices.Clone(s.fs.types)
	s.fs.types = slices.Delete(s.fs.types, i, i+1)
	if err := s.fs.saveTypesLocked(); err != nil {
		s.fs.types = prev
		return err
	}
	return nil
}

func (s *customTypeStore) Search(ctx context.Context, query string) ([]*store.CustomType, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*store.CustomType, 0)
	for _, t := range s.fs.types {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *customTypeStore) Count(ctx context.Context) (int, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()
	return len(s.fs.types), nil
}

func (s *customTypeStore) index(id string) int {
	return slices.IndexFunc(s.fs.types, func(t *store.CustomType) bool {
		return t.ID == id
	})
}

func (s *customTypeStore) indexByName(name string) int {
	return slices.IndexFunc(s.fs.types, func(t *store.CustomType) bool {
		return t.Name == name
	})
}
