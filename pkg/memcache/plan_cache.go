package mem

import (
	"context"
	"sync"
	"time"
)

// PlanStore caches serialized itineraries by request fingerprint.
type PlanStore interface {
	// Get reports a miss with ok=false; err is reserved for backend failures.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// maxPlans triggers a sweep of expired entries on Set.
const maxPlans = 1000

type MemoryPlans struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryPlans() *MemoryPlans {
	return &MemoryPlans{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryPlans) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// re-check, a concurrent Set may have refreshed it
		if cur, ok := s.data[key]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *MemoryPlans) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.data[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}

	if len(s.data) > maxPlans {
		for k, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, k)
			}
		}
	}
	return nil
}

func (s *MemoryPlans) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
