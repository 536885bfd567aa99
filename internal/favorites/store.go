// Package favorites holds the set of favorited photo identifiers and its
// save-on-exit persistence.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/five82/gallery/internal/catalog"
)

// Hooks let the UI reconcile the favorites tab when the set crosses empty.
type Hooks struct {
	// BecameNonEmpty fires before the first id is inserted.
	BecameNonEmpty func()
	// BecameEmpty fires after the last id is removed.
	BecameEmpty func()
}

// Store is an insertion-ordered set of identifiers.
type Store struct {
	ids   map[catalog.ID]struct{}
	order []catalog.ID
	hooks Hooks
}

// New returns an empty store holding ids.
func New(ids ...catalog.ID) *Store {
	s := &Store{ids: make(map[catalog.ID]struct{}, len(ids))}
	for _, id := range ids {
		s.insert(id)
	}
	return s
}

// SetHooks replaces the reconciliation callbacks.
func (s *Store) SetHooks(h Hooks) {
	s.hooks = h
}

// Add inserts id. It reports false when id was already present.
func (s *Store) Add(id catalog.ID) bool {
	if s.Contains(id) {
		return false
	}
	if len(s.order) == 0 && s.hooks.BecameNonEmpty != nil {
		s.hooks.BecameNonEmpty()
	}
	s.insert(id)
	return true
}

// Remove deletes id. It reports false when id was absent.
func (s *Store) Remove(id catalog.ID) bool {
	if !s.Contains(id) {
		return false
	}
	delete(s.ids, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if len(s.order) == 0 && s.hooks.BecameEmpty != nil {
		s.hooks.BecameEmpty()
	}
	return true
}

// Contains reports membership.
func (s *Store) Contains(id catalog.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Size returns the number of ids.
func (s *Store) Size() int {
	return len(s.order)
}

// IDs returns a copy of the ids in insertion order.
func (s *Store) IDs() []catalog.ID {
	out := make([]catalog.ID, len(s.order))
	copy(out, s.order)
	return out
}

// QueryFragment renders the set as repeated "id=<value>&" parameters for a
// bulk fetch. Only meaningful when Size() > 0.
func (s *Store) QueryFragment() string {
	var b strings.Builder
	for _, id := range s.order {
		b.WriteString("id=")
		b.WriteString(strconv.FormatInt(id.Value, 10))
		b.WriteString("&")
	}
	return b.String()
}

// Serialize encodes the set as a JSON array of identifier strings.
func (s *Store) Serialize() (string, error) {
	keys := make([]string, len(s.order))
	for i, id := range s.order {
		keys[i] = id.String()
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("marshal favorites: %w", err)
	}
	return string(data), nil
}

// ErrCorrupt marks a stored set that could not be read in full.
var ErrCorrupt = errors.New("favorites corrupt")

// InvalidKeysError lists stored keys that are not identifiers. It matches
// ErrCorrupt under errors.Is.
type InvalidKeysError struct {
	Keys []string
}

func (e *InvalidKeysError) Error() string {
	return fmt.Sprintf("%v: unreadable ids %q", ErrCorrupt, e.Keys)
}

func (e *InvalidKeysError) Unwrap() error { return ErrCorrupt }

// Deserialize decodes a blob written by Serialize. The older object form
// {"photoId=5": "..."} is accepted too; its keys are the ids.
//
// A blob that is not JSON returns a nil store and an error wrapping
// ErrCorrupt. Keys that do not parse are skipped: the store holds the
// rest and the error is an *InvalidKeysError.
func Deserialize(blob string) (*Store, error) {
	trimmed := strings.TrimSpace(blob)
	if trimmed == "" || trimmed == "null" {
		return New(), nil
	}

	var keys []string
	if strings.HasPrefix(trimmed, "{") {
		var legacy map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &legacy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		for k := range legacy {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	} else if err := json.Unmarshal([]byte(trimmed), &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	s := New()
	var bad []string
	for _, k := range keys {
		id, err := catalog.ParseID(k)
		if err != nil {
			bad = append(bad, k)
			continue
		}
		s.insert(id)
	}
	if len(bad) > 0 {
		return s, &InvalidKeysError{Keys: bad}
	}
	return s, nil
}

func (s *Store) insert(id catalog.ID) {
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}
