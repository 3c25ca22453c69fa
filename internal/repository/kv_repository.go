package repository

import (
	"errors"

	"farm-advisory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository defines the interface for raw key/value document storage.
// Implementations are scoped to a single namespace.
type KVRepository interface {
	// Get returns the stored string for key; ok is false when the key is absent
	Get(key string) (value string, ok bool, err error)
	// Put stores value under key, replacing any previous value
	Put(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys lists every key in the namespace in no particular order
	Keys() ([]string, error)
	// Clear removes every key in the namespace
	Clear() error
}

// kvRepository implements KVRepository on a SQL table through gorm
type kvRepository struct {
	db        *gorm.DB
	namespace string
}

// NewKVRepository creates a gorm-backed repository for the given namespace
func NewKVRepository(db *gorm.DB, namespace string) KVRepository {
	return &kvRepository{db: db, namespace: namespace}
}

// AutoMigrate creates or updates the kv_entries table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.KVEntry{})
}

// Get fetches the value stored under key
func (r *kvRepository) Get(key string) (string, bool, error) {
	var entry model.KVEntry
	err := r.db.Where("namespace = ? AND entry_key = ?", r.namespace, key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Put upserts the value stored under key
func (r *kvRepository) Put(key, value string) error {
	entry := model.KVEntry{
		Namespace: r.namespace,
		Key:       key,
		Value:     value,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete removes key from the namespace
func (r *kvRepository) Delete(key string) error {
	return r.db.Where("namespace = ? AND entry_key = ?", r.namespace, key).Delete(&model.KVEntry{}).Error
}

// Keys lists all keys in the namespace
func (r *kvRepository) Keys() ([]string, error) {
	keys := []string{}
	err := r.db.Model(&model.KVEntry{}).Where("namespace = ?", r.namespace).Pluck("entry_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Clear removes all keys in the namespace, leaving other namespaces intact
func (r *kvRepository) Clear() error {
	return r.db.Where("namespace = ?", r.namespace).Delete(&model.KVEntry{}).Error
}
