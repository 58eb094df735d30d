package syncx

import "sync"

// OnceMap is a read-through cache that runs its loader at most once per key,
// even under concurrent Get calls. Failed loads are not cached.
type OnceMap[K comparable, V any] struct {
	load    func(K) (V, error)
	entries *RWGuard[map[K]*onceEntry[V]]
}

type onceEntry[V any] struct {
	once  sync.Once
	value V
	err   error
}

// NewOnceMap creates a cache that fills missing keys with load.
func NewOnceMap[K comparable, V any](load func(K) (V, error)) *OnceMap[K, V] {
	return &OnceMap[K, V]{
		load:    load,
		entries: NewGuard(make(map[K]*onceEntry[V])),
	}
}

// Get returns the cached value for key, loading it on first use.
func (m *OnceMap[K, V]) Get(key K) (V, error) {
	entry := m.entries.Update(func(entries *map[K]*onceEntry[V]) any {
		e, ok := (*entries)[key]
		if !ok {
			e = &onceEntry[V]{}
			(*entries)[key] = e
		}
		return e
	}).(*onceEntry[V])

	entry.once.Do(func() {
		entry.value, entry.err = m.load(key)
	})

	if entry.err != nil {
		m.entries.Write(func(entries *map[K]*onceEntry[V]) {
			if (*entries)[key] == entry {
				delete(*entries, key)
			}
		})
	}
	return entry.value, entry.err
}

// Len returns the number of keys currently cached or loading.
func (m *OnceMap[K, V]) Len() int {
	return m.entries.Read(func(entries map[K]*onceEntry[V]) any {
		return len(entries)
	}).(int)
}
