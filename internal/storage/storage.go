// Package storage adapts a raw key/value backend into a document store.
// Values are serialized to JSON on write and decoded on read. Backend and
// codec failures are logged here and surface to callers only as returned
// errors on writes or as the caller's default on reads.
package storage

import (
	"fmt"
	"log/slog"

	"farm-advisory/internal/repository"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store serializes documents into a KVRepository
type Store struct {
	repo repository.KVRepository
	log  *slog.Logger
}

// NewStore creates a Store over repo
func NewStore(repo repository.KVRepository, log *slog.Logger) *Store {
	return &Store{
		repo: repo,
		log:  log.With("component", "storage"),
	}
}

// Set serializes value and stores it under key. On failure nothing is
// persisted, the failure is logged and the error is returned.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error("error saving to storage", "key", key, "error", err.Error())
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.repo.Put(key, string(data)); err != nil {
		s.log.Error("error saving to storage", "key", key, "error", err.Error())
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

// Get reads the document stored under key and decodes it on top of a copy
// of def, so fields missing from the stored document keep their default.
// An absent key, a backend failure or an undecodable document all yield def.
func Get[T any](s *Store, key string, def T) T {
	raw, ok, err := s.repo.Get(key)
	if err != nil {
		s.log.Error("error reading from storage", "key", key, "error", err.Error())
		return def
	}
	if !ok || raw == "" {
		return def
	}
	v := def
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Error("error reading from storage", "key", key, "error", err.Error())
		return def
	}
	return v
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	if err := s.repo.Delete(key); err != nil {
		s.log.Error("error removing from storage", "key", key, "error", err.Error())
		return fmt.Errorf("storage: remove %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key in the store's namespace
func (s *Store) Clear() error {
	if err := s.repo.Clear(); err != nil {
		s.log.Error("error clearing storage", "error", err.Error())
		return fmt.Errorf("storage: clear: %w", err)
	}
	return nil
}

// AllKeys lists the stored keys in no particular order. A backend failure
// is logged and yields an empty list.
func (s *Store) AllKeys() []string {
	keys, err := s.repo.Keys()
	if err != nil {
		s.log.Error("error getting storage keys", "error", err.Error())
		return []string{}
	}
	return keys
}
