package service

import (
	"time"

	"farm-advisory/internal/model"
	"farm-advisory/internal/storage"
)

// entity is the pointer side of a per-id record type
type entity[T any] interface {
	*T
	RecordID() string
	Init(id string, at time.Time)
	Touch(at time.Time)
}

// collection is a per-id sequence of records stored as one document.
// Exported methods take the manager lock; lowercase helpers expect it held.
type collection[T any, PT entity[T]] struct {
	m     *RecordManager
	key   string
	order func([]T)
}

func newCollection[T any, PT entity[T]](m *RecordManager, key string) *collection[T, PT] {
	return &collection[T, PT]{m: m, key: key}
}

func (c *collection[T, PT]) load() []T {
	records := storage.Get(c.m.store, c.key, []T{})
	if records == nil {
		records = []T{}
	}
	if c.order != nil {
		c.order(records)
	}
	return records
}

func (c *collection[T, PT]) save(records []T) {
	// the store logs write failures; the in-memory result is still returned
	_ = c.m.store.Set(c.key, records)
}

func indexOf[T any, PT entity[T]](records []T, id string) int {
	for i := range records {
		if PT(&records[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

// Add assigns an id and creation time to rec, appends it and returns it
func (c *collection[T, PT]) Add(rec T) T {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	records := c.load()
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = PT(&records[i]).RecordID()
	}
	id := c.m.nextID(ids)
	PT(&rec).Init(id, c.m.timestamp())
	records = append(records, rec)
	c.save(records)
	return rec
}

// GetAll returns every stored record
func (c *collection[T, PT]) GetAll() []T {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return c.load()
}

// GetByID returns the record with the given id; ok is false if there is none
func (c *collection[T, PT]) GetByID(id string) (T, bool) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	records := c.load()
	if i := indexOf[T, PT](records, id); i >= 0 {
		return records[i], true
	}
	var zero T
	return zero, false
}

// Update merges patch into the record with the given id and stamps
// updatedAt. If no record matches, nothing is written and ok is false.
func (c *collection[T, PT]) Update(id string, patch model.Patch[T]) (T, bool) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	records := c.load()
	i := indexOf[T, PT](records, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	patch.Apply(&records[i])
	PT(&records[i]).Touch(c.m.timestamp())
	c.save(records)
	return records[i], true
}

// Delete removes the record with the given id, if present
func (c *collection[T, PT]) Delete(id string) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	records := c.load()
	filtered := make([]T, 0, len(records))
	for i := range records {
		if PT(&records[i]).RecordID() != id {
			filtered = append(filtered, records[i])
		}
	}
	c.save(filtered)
}

// DeleteAll removes the collection's document entirely
func (c *collection[T, PT]) DeleteAll() {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	_ = c.m.store.Remove(c.key)
}
