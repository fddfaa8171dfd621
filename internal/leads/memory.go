package leads

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps leads in memory for tests and local development.
type MemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leads: map[string]*Lead{}}
}

func (r *MemoryRepository) Insert(ctx context.Context, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Lead{}
	for _, lead := range r.leads {
		if f.Type != "" && lead.Type != f.Type {
			continue
		}
		if f.Status != "" && lead.Status != f.Status {
			continue
		}
		cp := *lead
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *lead
	return &cp, nil
}

func (r *MemoryRepository) SetStatus(ctx context.Context, id string, status LeadStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return ErrNotFound
	}
	lead.Status = status
	lead.UpdatedAt = at
	return nil
}

func (r *MemoryRepository) AppendNote(ctx context.Context, id string, note LeadNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return ErrNotFound
	}
	lead.Notes = append(lead.Notes, note)
	lead.UpdatedAt = note.CreatedAt
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return ErrNotFound
	}
	delete(r.leads, id)
	return nil
}
