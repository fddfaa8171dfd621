package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"

	"github.com/equza-living-co/go-services/internal/catalog"
)

// memoryStore backs the in-memory repositories used by unit tests and as the
// fallback store when no Mongo instance is reachable. Reads hand out copies of
// the field maps so callers never share memory with concurrent writers; writes
// replace field values wholesale rather than mutating nested structures.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{} // id -> fields
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string]map[string]interface{}{}}
}

func (s *memoryStore) snapshot() []catalog.RawDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.RawDocument, 0, len(s.docs))
	for id, fields := range s.docs {
		out = append(out, catalog.RawDocument{ID: id, Fields: copyFields(fields)})
	}
	return out
}

func (s *memoryStore) findBySlug(slug string) (catalog.RawDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, fields := range s.docs {
		if f, _ := fields["slug"].(string); f == slug {
			return catalog.RawDocument{ID: id, Fields: copyFields(fields)}, nil
		}
	}
	return catalog.RawDocument{}, catalog.ErrNotFound
}

func (s *memoryStore) create(id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := copyFields(fields)
	now := time.Now().UTC()
	cp["createdAt"] = now
	cp["updatedAt"] = now
	s.docs[id] = cp
	return nil
}

func (s *memoryStore) update(id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return catalog.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	doc["updatedAt"] = time.Now().UTC()
	return nil
}

func (s *memoryStore) delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *memoryStore) upsertBySlug(slug string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if f, _ := doc["slug"].(string); f == slug {
			for k, v := range fields {
				doc[k] = v
			}
			doc["updatedAt"] = time.Now().UTC()
			return nil
		}
	}
	cp := copyFields(fields)
	cp["slug"] = slug
	now := time.Now().UTC()
	cp["createdAt"] = now
	cp["updatedAt"] = now
	s.docs["mem_"+slug] = cp
	return nil
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}

func sortAndLimit(docs []catalog.RawDocument, limit int64) []catalog.RawDocument {
	sort.SliceStable(docs, func(i, j int) bool {
		si, sj := cast.ToInt(docs[i].Fields["sortOrder"]), cast.ToInt(docs[j].Fields["sortOrder"])
		if si != sj {
			return si < sj
		}
		return cast.ToString(docs[i].Fields["name"]) < cast.ToString(docs[j].Fields["name"])
	})
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs
}

func matchActive(fields map[string]interface{}, active *bool) bool {
	if active == nil {
		return true
	}
	return cast.ToBool(fields["isActive"]) == *active
}

// MemoryProductRepository implements ProductRepository in memory.
type MemoryProductRepository struct {
	store *memoryStore
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{store: newMemoryStore()}
}

func (r *MemoryProductRepository) Find(ctx context.Context, f catalog.ProductFilter) ([]catalog.RawDocument, error) {
	out := []catalog.RawDocument{}
	for _, doc := range r.store.snapshot() {
		if !matchActive(doc.Fields, f.Active) {
			continue
		}
		if f.Featured != nil && cast.ToBool(doc.Fields["isFeatured"]) != *f.Featured {
			continue
		}
		if f.Collection != "" && !containsString(doc.Fields["collections"], f.Collection) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(cast.ToString(doc.Fields["name"])), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, doc)
	}
	return sortAndLimit(out, f.Limit), nil
}

func (r *MemoryProductRepository) FindBySlug(ctx context.Context, slug string) (catalog.RawDocument, error) {
	return r.store.findBySlug(slug)
}

func (r *MemoryProductRepository) Create(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.create(id, fields)
}

func (r *MemoryProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.update(id, fields)
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(id)
}

func (r *MemoryProductRepository) UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return r.store.upsertBySlug(slug, fields)
}

func containsString(v interface{}, want string) bool {
	switch s := v.(type) {
	case []string:
		for _, e := range s {
			if e == want {
				return true
			}
		}
	case []interface{}:
		for _, e := range s {
			if cast.ToString(e) == want {
				return true
			}
		}
	}
	return false
}

// MemoryCollectionRepository implements CollectionRepository in memory.
type MemoryCollectionRepository struct {
	store *memoryStore
}

func NewMemoryCollectionRepository() *MemoryCollectionRepository {
	return &MemoryCollectionRepository{store: newMemoryStore()}
}

func (r *MemoryCollectionRepository) Find(ctx context.Context, f catalog.CollectionFilter) ([]catalog.RawDocument, error) {
	out := []catalog.RawDocument{}
	for _, doc := range r.store.snapshot() {
		if !matchActive(doc.Fields, f.Active) {
			continue
		}
		if f.Type != "" && cast.ToString(doc.Fields["type"]) != f.Type {
			continue
		}
		out = append(out, doc)
	}
	return sortAndLimit(out, f.Limit), nil
}

func (r *MemoryCollectionRepository) FindBySlug(ctx context.Context, slug string) (catalog.RawDocument, error) {
	return r.store.findBySlug(slug)
}

func (r *MemoryCollectionRepository) Create(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.create(id, fields)
}

func (r *MemoryCollectionRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.update(id, fields)
}

func (r *MemoryCollectionRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(id)
}

func (r *MemoryCollectionRepository) UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return r.store.upsertBySlug(slug, fields)
}

// MemoryWeaveTypeRepository implements WeaveTypeRepository in memory.
type MemoryWeaveTypeRepository struct {
	store *memoryStore
}

func NewMemoryWeaveTypeRepository() *MemoryWeaveTypeRepository {
	return &MemoryWeaveTypeRepository{store: newMemoryStore()}
}

func (r *MemoryWeaveTypeRepository) Find(ctx context.Context, f catalog.WeaveTypeFilter) ([]catalog.RawDocument, error) {
	out := []catalog.RawDocument{}
	for _, doc := range r.store.snapshot() {
		if !matchActive(doc.Fields, f.Active) {
			continue
		}
		out = append(out, doc)
	}
	return sortAndLimit(out, f.Limit), nil
}

func (r *MemoryWeaveTypeRepository) Create(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.create(id, fields)
}

func (r *MemoryWeaveTypeRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.update(id, fields)
}

func (r *MemoryWeaveTypeRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(id)
}

func (r *MemoryWeaveTypeRepository) UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return r.store.upsertBySlug(slug, fields)
}
