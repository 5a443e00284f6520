package memory

import (
	"context"
	"sync"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// keep a bounded window per host; the dashboard only ever asks for the
// last handful of samples.
const maxPerHost = 512

type Store struct {
	mu      sync.RWMutex
	results map[domain.HostID][]domain.ProbeResult
}

func New() *Store {
	return &Store{results: make(map[domain.HostID][]domain.ProbeResult)}
}

func (m *Store) Append(ctx context.Context, r *domain.ProbeResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := append(m.results[r.HostID], *r)
	if len(rs) > maxPerHost {
		rs = rs[len(rs)-maxPerHost:]
	}
	m.results[r.HostID] = rs
	return nil
}

func (m *Store) LastByHost(ctx context.Context, id domain.HostID) (*domain.ProbeResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs := m.results[id]
	if len(rs) == 0 {
		return nil, nil
	}
	last := rs[len(rs)-1]
	return &last, nil
}

func (m *Store) Recent(ctx context.Context, id domain.HostID, n int) ([]domain.ProbeResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs := m.results[id]
	if n > len(rs) {
		n = len(rs)
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]domain.ProbeResult, n)
	copy(out, rs[len(rs)-n:])
	return out, nil
}
