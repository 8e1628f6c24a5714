package session

import "sync"

// MemoryBackend is a process-local KeyValueStore keyed by session id. It backs
// local development and tests; state is lost on restart.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

// ForSession returns a KeyValueStore namespaced to one session id.
func (m *MemoryBackend) ForSession(sessionID string) KeyValueStore {
	return &memoryKV{backend: m, prefix: sessionID + ":"}
}

type memoryKV struct {
	backend *MemoryBackend
	prefix  string
}

func (kv *memoryKV) Get(key string) (string, bool) {
	kv.backend.mu.RLock()
	defer kv.backend.mu.RUnlock()
	v, ok := kv.backend.data[kv.prefix+key]
	return v, ok
}

func (kv *memoryKV) Set(key, value string) {
	kv.backend.mu.Lock()
	defer kv.backend.mu.Unlock()
	kv.backend.data[kv.prefix+key] = value
}

func (kv *memoryKV) Delete(key string) {
	kv.backend.mu.Lock()
	defer kv.backend.mu.Unlock()
	delete(kv.backend.data, kv.prefix+key)
}
