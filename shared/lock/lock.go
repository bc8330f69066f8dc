package lock

import "sync"

// Keyed provides mutual exclusion per string key. The booking service holds
// a room's lock for the whole read-check-write span of a create or update,
// so two overlapping candidates for the same room can never both pass the
// conflict check. Operations on different rooms proceed in parallel.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyed() *Keyed {
	return &Keyed{
		locks: map[string]*entry{},
	}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *Keyed) Lock(key string) {
	k.mu.Lock()

	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}

	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. The entry is dropped once no goroutine
// holds or waits on it, so the map does not grow with the key space.
func (k *Keyed) Unlock(key string) {
	k.mu.Lock()

	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()

		panic("lock: unlock of unheld key " + key)
	}

	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}

	k.mu.Unlock()

	e.mu.Unlock()
}
