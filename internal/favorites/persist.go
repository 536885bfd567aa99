package favorites

import (
	"context"
	"fmt"
	"sync"
)

// StorageKey is the key the serialized set lives under.
const StorageKey = "favoriteListId"

// Backend is the external key-value string store.
type Backend interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
}

// Load reads the persisted set, returning an empty store when nothing was
// saved. Errors matching ErrCorrupt come with the ids that were readable,
// or an empty store; backend failures return a nil store.
func Load(ctx context.Context, b Backend) (*Store, error) {
	blob, ok, err := b.Load(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if !ok {
		return New(), nil
	}
	s, err := Deserialize(blob)
	if s == nil {
		s = New()
	}
	return s, err
}

// Saver flushes a store to its backend exactly once, at teardown. Mutations
// between start and teardown live only in memory.
type Saver struct {
	backend Backend
	store   *Store
	once    sync.Once
	err     error
}

// NewSaver binds store to backend.
func NewSaver(b Backend, s *Store) *Saver {
	return &Saver{backend: b, store: s}
}

// Flush writes the set. Calls after the first return the first result.
func (sv *Saver) Flush(ctx context.Context) error {
	sv.once.Do(func() {
		blob, err := sv.store.Serialize()
		if err != nil {
			sv.err = err
			return
		}
		if err := sv.backend.Save(ctx, StorageKey, blob); err != nil {
			sv.err = fmt.Errorf("save favorites: %w", err)
		}
	})
	return sv.err
}
