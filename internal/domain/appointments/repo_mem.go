package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// requestRepoMem backs deployments running on the file case store, where no
// database is configured. Requests live for the life of the process.
type requestRepoMem struct {
	mu    sync.Mutex
	store map[uuid.UUID]*Request
}

func NewRequestRepoMem() RequestRepository {
	return &requestRepoMem{store: make(map[uuid.UUID]*Request)}
}

func (m *requestRepoMem) Create(_ context.Context, r *Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = uuid.New()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Status = StatusPending
	cp := *r
	m.store[r.ID] = &cp
	return nil
}

func (m *requestRepoMem) GetByID(_ context.Context, id uuid.UUID) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *requestRepoMem) List(_ context.Context, status RequestStatus, limit, offset int) ([]*Request, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []*Request
	for _, r := range m.store {
		if status != "" && r.Status != status {
			continue
		}
		cp := *r
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *requestRepoMem) UpdateStatus(_ context.Context, id uuid.UUID, status RequestStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}
