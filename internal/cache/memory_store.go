package cache

import "sync"

// NewStore 构建进程内缓存，由 handler 构造时注入，整站复用一份实例。
func NewStore() Store {
	return &memoryStore{
		entries: make(map[string]*Entry),
	}
}

// memoryStore 用读写锁保护 map；同一路径并发回填时后写者覆盖，两者数据等价。
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func (s *memoryStore) Get(path string) (*Entry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[path]
	s.mu.RUnlock()
	return entry, ok
}

func (s *memoryStore) Put(path string, entry *Entry) {
	if entry == nil {
		return
	}
	s.mu.Lock()
	s.entries[path] = entry
	s.mu.Unlock()
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*Entry)
	s.mu.Unlock()
}

func (s *memoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Entries: len(s.entries)}
	for _, entry := range s.entries {
		stats.Bytes += int64(len(entry.Data))
	}
	return stats
}
