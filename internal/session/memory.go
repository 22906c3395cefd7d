package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	username string
	flashes  []Flash
	expires  time.Time
}

// MemoryStore keeps sessions in process memory. It is meant for a single
// development instance when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry), now: time.Now}
}

// entry returns the live entry for sid, creating it when create is set.
// Caller must hold mu.
func (s *MemoryStore) entry(sid string, create bool) *memoryEntry {
	e, ok := s.entries[sid]
	if ok && s.now().After(e.expires) {
		delete(s.entries, sid)
		e, ok = nil, false
	}
	if !ok && create {
		e = &memoryEntry{}
		s.entries[sid] = e
	}
	if e != nil && create {
		e.expires = s.now().Add(TTL)
	}
	return e
}

func (s *MemoryStore) Username(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.entry(sid, false); e != nil {
		return e.username, nil
	}
	return "", nil
}

func (s *MemoryStore) SetUsername(_ context.Context, sid, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(sid, true).username = username
	return nil
}

func (s *MemoryStore) ClearUsername(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.entry(sid, false); e != nil {
		e.username = ""
	}
	return nil
}

func (s *MemoryStore) AddFlash(_ context.Context, sid string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid, true)
	e.flashes = append(e.flashes, f)
	return nil
}

func (s *MemoryStore) PopFlashes(_ context.Context, sid string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid, false)
	if e == nil {
		return nil, nil
	}
	out := e.flashes
	e.flashes = nil
	return out, nil
}
