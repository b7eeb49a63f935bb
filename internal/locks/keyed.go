package locks

import (
	"sort"
	"sync"
)

// Keyed serializes work per entity id. Invoice and payment writes take the
// lock for every counterparty and product row they will touch before opening
// the database transaction, so two concurrent operations against the same row
// cannot interleave their read-modify-write sequences.
type Keyed struct {
	mu    sync.Mutex
	items map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyed() *Keyed {
	return &Keyed{items: make(map[string]*entry)}
}

// Acquire locks every key and returns the release function. Keys are locked
// in sorted order so overlapping acquisitions cannot deadlock.
func (k *Keyed) Acquire(keys ...string) func() {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	sort.Strings(unique)

	entries := make([]*entry, 0, len(unique))
	for _, key := range unique {
		e := k.retain(key)
		e.mu.Lock()
		entries = append(entries, e)
	}

	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
		for _, key := range unique {
			k.release(key)
		}
	}
}

func (k *Keyed) retain(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.items[key]
	if !ok {
		e = &entry{}
		k.items[key] = e
	}
	e.refs++
	return e
}

func (k *Keyed) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.items[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(k.items, key)
	}
}
