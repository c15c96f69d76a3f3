// Package storage persists the working field list and user preferences.
// A Store encodes values as JSON and hands the bytes to a Backend; the file
// backend writes atomically and the memory backend serves tests.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// FieldsKey names the persisted field list.
	FieldsKey = "hypergo_builder_fields"
	// PrefsKey names the persisted preferences.
	PrefsKey = "hypergo_builder_prefs"
)

var (
	// ErrNotFound is returned by backends for keys that were never written.
	ErrNotFound = errors.New("storage: key not found")
	// ErrCorrupt marks persisted data that no longer decodes.
	ErrCorrupt = errors.New("storage: corrupt data")
)

// Backend is a minimal key/value byte store.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Prefs are user preferences kept next to the form.
type Prefs struct {
	Theme   string `json:"theme,omitempty"`
	Variant string `json:"variant,omitempty"`
}

// Store reads and writes builder state through a Backend.
type Store struct {
	backend Backend
}

// New wraps backend. A nil backend falls back to memory.
func New(backend Backend) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{backend: backend}
}

// LoadFields returns the persisted list. A missing entry yields an empty
// list and no error; an entry that fails to decode yields an empty list and
// an error wrapping ErrCorrupt.
func (s *Store) LoadFields(ctx context.Context) (*model.List, error) {
	data, err := s.backend.Read(ctx, FieldsKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.NewList(), nil
		}
		return model.NewList(), fmt.Errorf("storage: load fields: %w", err)
	}
	var list model.List
	if err := json.Unmarshal(data, &list); err != nil {
		return model.NewList(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &list, nil
}

// SaveFields persists list.
func (s *Store) SaveFields(ctx context.Context, list *model.List) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("storage: encode fields: %w", err)
	}
	if err := s.backend.Write(ctx, FieldsKey, data); err != nil {
		return fmt.Errorf("storage: save fields: %w", err)
	}
	return nil
}

// ClearFields drops the persisted list.
func (s *Store) ClearFields(ctx context.Context) error {
	if err := s.backend.Delete(ctx, FieldsKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("storage: clear fields: %w", err)
	}
	return nil
}

// LoadPrefs returns the stored preferences, or the zero value when none
// were saved.
func (s *Store) LoadPrefs(ctx context.Context) (Prefs, error) {
	data, err := s.backend.Read(ctx, PrefsKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("storage: load prefs: %w", err)
	}
	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Prefs{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return prefs, nil
}

// SavePrefs persists prefs.
func (s *Store) SavePrefs(ctx context.Context, prefs Prefs) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("storage: encode prefs: %w", err)
	}
	if err := s.backend.Write(ctx, PrefsKey, data); err != nil {
		return fmt.Errorf("storage: save prefs: %w", err)
	}
	return nil
}
