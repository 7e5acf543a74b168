package dedupe

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrDuplicateKey reports two survivors sharing a non-empty key.
var ErrDuplicateKey = errors.New("duplicate key after deduplication")

// Group collects the members sharing one key in input order. Survivor indexes
// Members.
type Group[T any] struct {
	Key      string
	Members  []T
	Survivor int
}

// Representative returns the surviving member.
func (g Group[T]) Representative() T {
	return g.Members[g.Survivor]
}

// Duplicates reports how many members were dropped in favour of the survivor.
func (g Group[T]) Duplicates() int {
	return len(g.Members) - 1
}

// GroupBy partitions items by key and picks each group's survivor with order.
// Groups appear in the order their first member was seen.
func GroupBy[T any, O cmp.Ordered](items []T, key func(T) string, order func(T) O) []Group[T] {
	groups := make([]Group[T], 0, len(items))
	byKey := make(map[string]int, len(items))
	for _, item := range items {
		k := key(item)
		if k != "" {
			if idx, ok := byKey[k]; ok {
				g := &groups[idx]
				g.Members = append(g.Members, item)
				if order(item) < order(g.Members[g.Survivor]) {
					g.Survivor = len(g.Members) - 1
				}
				continue
			}
			byKey[k] = len(groups)
		}
		groups = append(groups, Group[T]{Key: k, Members: []T{item}})
	}
	return groups
}

// Deduplicate returns one survivor per non-empty key plus every item whose key
// is empty, in first-seen group order.
func Deduplicate[T any, O cmp.Ordered](items []T, key func(T) string, order func(T) O) ([]T, error) {
	groups := GroupBy(items, key, order)
	out := make([]T, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Representative())
	}
	if err := Verify(out, key); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify checks that no two items share a non-empty key.
func Verify[T any](items []T, key func(T) string) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if first, ok := seen[k]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateKey, k, first, i)
		}
		seen[k] = i
	}
	return nil
}
