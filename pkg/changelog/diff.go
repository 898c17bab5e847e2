// Package changelog compares two design token snapshots and keeps the
// resulting records in a newest-first history.
package changelog

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ObjectType tags a changelog entry.
type ObjectType string

// Changelog entry types.
const (
	Add    ObjectType = "add"
	Delete ObjectType = "delete"
	Change ObjectType = "change"
)

// Object is one entry of a diff. Add entries carry New, delete entries carry
// Old and change entries carry both.
type Object[T any] struct {
	Type ObjectType `json:"type"`
	Old  *T         `json:"old,omitempty"`
	New  *T         `json:"new,omitempty"`
}

// Diff matches prev and next by key and returns the added items (in next
// order), then the deleted items (in prev order), then the changed items (in
// next order). A pair sharing a key is reported only when it is not deeply
// equal; nil and empty slices or maps compare equal. When a key repeats, the
// last item holding it is used.
func Diff[T any, K comparable](prev, next []T, key func(T) K) []Object[T] {
	prevByKey := index(prev, key)
	nextByKey := index(next, key)

	var adds, deletes, changes []Object[T]
	seen := make(map[K]bool, len(next))
	for _, item := range next {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true

		newItem := nextByKey[k]
		oldItem, ok := prevByKey[k]
		if !ok {
			adds = append(adds, Object[T]{Type: Add, New: &newItem})
			continue
		}
		if !Equal(oldItem, newItem) {
			changes = append(changes, Object[T]{Type: Change, Old: &oldItem, New: &newItem})
		}
	}

	seen = make(map[K]bool, len(prev))
	for _, item := range prev {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		if _, ok := nextByKey[k]; !ok {
			oldItem := prevByKey[k]
			deletes = append(deletes, Object[T]{Type: Delete, Old: &oldItem})
		}
	}

	out := make([]Object[T], 0, len(adds)+len(deletes)+len(changes))
	out = append(out, adds...)
	out = append(out, deletes...)
	out = append(out, changes...)
	return out
}

// Equal reports whether a and b are deeply equal, treating nil and empty
// slices and maps alike.
func Equal[T any](a, b T) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

func index[T any, K comparable](items []T, key func(T) K) map[K]T {
	m := make(map[K]T, len(items))
	for _, item := range items {
		m[key(item)] = item
	}
	return m
}
