package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/powerise/corporate-site/internal/content"
)

// In-memory repositories mirroring the Mongo implementations. Used by
// unit tests and as a fallback when no MONGODB_URI is configured so the
// site can still be exercised locally.

// MemoryPostRepo implements PostRepository backed by a map.
type MemoryPostRepo struct {
	mu    sync.RWMutex
	store map[string]*content.Post
}

func NewMemoryPostRepo() *MemoryPostRepo {
	return &MemoryPostRepo{store: make(map[string]*content.Post)}
}

func (m *MemoryPostRepo) List(ctx context.Context, opts ListOptions) ([]*content.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*content.Post{}
	for _, p := range m.store {
		if opts.filtersStatus() && p.Status != opts.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = "updatedAt"
	}
	sort.Slice(out, func(i, j int) bool {
		return postSortKey(out[i], orderBy).After(postSortKey(out[j], orderBy))
	})
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func postSortKey(p *content.Post, field string) time.Time {
	switch field {
	case "createdAt":
		return p.CreatedAt
	case "publishedAt":
		if p.PublishedAt != nil {
			return *p.PublishedAt
		}
		return time.Time{}
	default:
		return p.UpdatedAt
	}
}

func (m *MemoryPostRepo) Get(ctx context.Context, id string) (*content.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryPostRepo) Create(ctx context.Context, p *content.Post) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	m.store[p.ID] = &cp
	return p.ID, nil
}

func (m *MemoryPostRepo) Update(ctx context.Context, id string, set map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			p.Title = v.(string)
		case "content":
			p.Content = v.(string)
		case "excerpt":
			p.Excerpt = v.(string)
		case "status":
			p.Status = v.(string)
		case "tags":
			p.Tags = v.([]string)
		case "author":
			p.Author = v.(string)
		case "featuredImage":
			p.FeaturedImage = v.(string)
		case "publishedAt":
			t := v.(time.Time)
			p.PublishedAt = &t
		case "updatedAt":
			p.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (m *MemoryPostRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// MemoryWorkRepo implements WorkRepository backed by a map.
type MemoryWorkRepo struct {
	mu    sync.RWMutex
	store map[string]*content.Work
}

func NewMemoryWorkRepo() *MemoryWorkRepo {
	return &MemoryWorkRepo{store: make(map[string]*content.Work)}
}

func (m *MemoryWorkRepo) List(ctx context.Context, opts ListOptions) ([]*content.Work, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*content.Work{}
	for _, w := range m.store {
		if opts.filtersStatus() && w.Status != opts.Status {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = "updatedAt"
	}
	sort.Slice(out, func(i, j int) bool {
		return workSortKey(out[i], orderBy).After(workSortKey(out[j], orderBy))
	})
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func workSortKey(w *content.Work, field string) time.Time {
	if field == "publishedAt" {
		if w.PublishedAt != nil {
			return *w.PublishedAt
		}
		return time.Time{}
	}
	return w.UpdatedAt
}

func (m *MemoryWorkRepo) Get(ctx context.Context, id string) (*content.Work, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *MemoryWorkRepo) Create(ctx context.Context, w *content.Work) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	cp := *w
	m.store[w.ID] = &cp
	return w.ID, nil
}

func (m *MemoryWorkRepo) Update(ctx context.Context, id string, set map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			w.Title = v.(string)
		case "description":
			w.Description = v.(string)
		case "content":
			w.Content = v.(string)
		case "slug":
			w.Slug = v.(string)
		case "category":
			w.Category = v.(string)
		case "status":
			w.Status = v.(string)
		case "tags":
			w.Tags = v.([]string)
		case "images":
			w.Images = v.([]string)
		case "featuredImage":
			w.FeaturedImage = v.(string)
		case "clientName":
			w.ClientName = v.(string)
		case "projectUrl":
			w.ProjectURL = v.(string)
		case "technologies":
			w.Technologies = v.([]string)
		case "publishedAt":
			t := v.(time.Time)
			w.PublishedAt = &t
		case "updatedAt":
			w.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (m *MemoryWorkRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// MemoryContactRepo implements ContactRepository backed by a map.
type MemoryContactRepo struct {
	mu    sync.RWMutex
	store map[string]*content.Contact
}

func NewMemoryContactRepo() *MemoryContactRepo {
	return &MemoryContactRepo{store: make(map[string]*content.Contact)}
}

func (m *MemoryContactRepo) List(ctx context.Context, opts ListOptions) ([]*content.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*content.Contact{}
	for _, c := range m.store {
		if opts.filtersStatus() && c.Status != opts.Status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MemoryContactRepo) Get(ctx context.Context, id string) (*content.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryContactRepo) Create(ctx context.Context, c *content.Contact) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	m.store[c.ID] = &cp
	return c.ID, nil
}

func (m *MemoryContactRepo) Update(ctx context.Context, id string, set map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "status":
			c.Status = v.(string)
		case "updatedAt":
			c.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (m *MemoryContactRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
