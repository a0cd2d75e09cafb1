package memstore

import (
	"sync"

	"github.com/lawbridge/go-session-core/store"
)

var _ store.Store = (*MemStore)(nil)

// MemStore is a mutex-guarded in-memory store. It backs tests and
// single-process deployments where persistence across restarts is not
// required.
type MemStore struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (ms *MemStore) Write(key, value string) {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	ms.values[key] = value
}

func (ms *MemStore) Read(key string) (string, bool) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	value, ok := ms.values[key]
	return value, ok
}

func (ms *MemStore) Remove(key string) {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	delete(ms.values, key)
}

// Snapshot returns a copy of the current contents, primarily for tests.
func (ms *MemStore) Snapshot() map[string]string {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	out := make(map[string]string, len(ms.values))
	for k, v := range ms.values {
		out[k] = v
	}
	return out
}
