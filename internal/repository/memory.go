package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"octofit-tracker/internal/models"
)

// memoryCollection keeps one kind in a map guarded by a RWMutex
type memoryCollection[T models.Record[T]] struct {
	mu     sync.RWMutex
	schema Schema[T]
	rows   map[int64]T
}

func newMemoryCollection[T models.Record[T]](schema Schema[T]) *memoryCollection[T] {
	return &memoryCollection[T]{
		schema: schema,
		rows:   make(map[int64]T),
	}
}

// NewMemoryStore creates a Store that keeps everything in process memory
func NewMemoryStore() *Store {
	return &Store{
		Teams:       newMemoryCollection(TeamSchema()),
		Users:       newMemoryCollection(UserSchema()),
		Activities:  newMemoryCollection(ActivitySchema()),
		Leaderboard: newMemoryCollection(LeaderboardSchema()),
		Workouts:    newMemoryCollection(WorkoutSchema()),
		backend:     memoryBackend{},
	}
}

func (c *memoryCollection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = make(map[int64]T)
	return nil
}

// InsertMany validates the whole batch before writing, so a failing batch
// leaves the collection unchanged
func (c *memoryCollection[T]) InsertMany(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pending := make(map[int64]T, len(records))
	for _, rec := range records {
		id := rec.PrimaryKey()
		if _, ok := c.rows[id]; ok {
			return c.schema.duplicateID(id)
		}
		if _, ok := pending[id]; ok {
			return c.schema.duplicateID(id)
		}
		if err := c.checkUnique(rec, 0, pending); err != nil {
			return err
		}
		pending[id] = rec
	}

	for id, rec := range pending {
		c.rows[id] = rec
	}
	return nil
}

func (c *memoryCollection[T]) Create(ctx context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := record.PrimaryKey()
	if _, ok := c.rows[id]; ok {
		return c.schema.duplicateID(id)
	}
	if err := c.checkUnique(record, 0, nil); err != nil {
		return err
	}
	c.rows[id] = record
	return nil
}

func (c *memoryCollection[T]) Get(ctx context.Context, id int64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.rows[id]
	if !ok {
		var zero T
		return zero, c.schema.notFound(id)
	}
	return rec, nil
}

func (c *memoryCollection[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	filters, err := c.schema.filterValues(opts.Filters)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	c.mu.RLock()
	out := make([]T, 0, len(c.rows))
	for _, rec := range c.rows {
		if c.matches(rec, filters, search) {
			out = append(out, rec)
		}
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return c.schema.Less(out[i], out[j]) })
	return out, nil
}

func (c *memoryCollection[T]) Update(ctx context.Context, id int64, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[id]; !ok {
		return c.schema.notFound(id)
	}
	record = record.WithPrimaryKey(id)
	if err := c.checkUnique(record, id, nil); err != nil {
		return err
	}
	c.rows[id] = record
	return nil
}

func (c *memoryCollection[T]) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[id]; !ok {
		return c.schema.notFound(id)
	}
	delete(c.rows, id)
	return nil
}

func (c *memoryCollection[T]) Count(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.rows)), nil
}

// checkUnique looks for another record holding the same unique value. self is
// the id being replaced (0 for inserts). Caller must hold the lock.
func (c *memoryCollection[T]) checkUnique(rec T, self int64, pending map[int64]T) error {
	for _, u := range c.schema.Unique {
		v := u.Value(rec)
		for id, other := range c.rows {
			if id != self && u.Value(other) == v {
				return c.schema.duplicateField(u.Column)
			}
		}
		for _, other := range pending {
			if u.Value(other) == v {
				return c.schema.duplicateField(u.Column)
			}
		}
	}
	return nil
}

func (c *memoryCollection[T]) matches(rec T, filters map[string]any, search string) bool {
	for column, want := range filters {
		if fmt.Sprint(rec.Field(column)) != fmt.Sprint(want) {
			return false
		}
	}
	if search == "" {
		return true
	}
	for _, column := range c.schema.Search {
		if strings.Contains(strings.ToLower(fmt.Sprint(rec.Field(column))), search) {
			return true
		}
	}
	return false
}

// memoryBackend has no connection to manage. Email uniqueness is enforced
// on every write through the user schema.
type memoryBackend struct{}

func (memoryBackend) ensureUserEmailIndex(ctx context.Context) error { return nil }
func (memoryBackend) ping(ctx context.Context) error                 { return nil }
func (memoryBackend) close() error                                   { return nil }
