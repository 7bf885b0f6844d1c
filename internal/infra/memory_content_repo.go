package infra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Vovarama1992/content-calendar/internal/models"
	"github.com/Vovarama1992/content-calendar/internal/ports"
)

// MemoryContentRepo keeps content in process memory. It backs local runs
// with DATABASE_URL=memory and the handler lifecycle tests.
type MemoryContentRepo struct {
	mu     sync.RWMutex
	nextID int
	rows   map[int]models.Content
}

func NewMemoryContentRepo() ports.ContentRepository {
	return &MemoryContentRepo{
		nextID: 1,
		rows:   make(map[int]models.Content),
	}
}

func clone(c models.Content) models.Content {
	if c.ID != nil {
		c.ID = models.IntPtr(*c.ID)
	}
	if c.DateUpdated != nil {
		t := *c.DateUpdated
		c.DateUpdated = &t
	}
	return c
}

// filter returns matching rows ordered by id. Caller holds the read lock.
func (r *MemoryContentRepo) filter(match func(models.Content) bool) []models.Content {
	ids := make([]int, 0, len(r.rows))
	for id, c := range r.rows {
		if match(c) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]models.Content, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(r.rows[id]))
	}
	return out
}

func (r *MemoryContentRepo) FindAll(_ context.Context) ([]models.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(models.Content) bool { return true }), nil
}

func (r *MemoryContentRepo) FindByID(_ context.Context, id int) (*models.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	c = clone(c)
	return &c, nil
}

func (r *MemoryContentRepo) FindAllByTitleContains(_ context.Context, keyword string) ([]models.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(c models.Content) bool {
		return strings.Contains(c.Title, keyword)
	}), nil
}

func (r *MemoryContentRepo) ListByStatus(_ context.Context, status models.Status) ([]models.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(c models.Content) bool {
		return c.Status == status
	}), nil
}

func (r *MemoryContentRepo) Save(_ context.Context, c *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == nil {
		r.insertLocked(c)
		return nil
	}
	prev, ok := r.rows[*c.ID]
	if !ok {
		return models.ErrNotFound
	}
	row := clone(*c)
	if row.DateCreated.IsZero() {
		row.DateCreated = prev.DateCreated
	}
	r.rows[*c.ID] = row
	return nil
}

func (r *MemoryContentRepo) SaveAll(_ context.Context, items []models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range items {
		r.insertLocked(&items[i])
	}
	return nil
}

func (r *MemoryContentRepo) insertLocked(c *models.Content) {
	id := r.nextID
	r.nextID++
	c.ID = models.IntPtr(id)
	r.rows[id] = clone(*c)
}

func (r *MemoryContentRepo) ExistsByID(_ context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *MemoryContentRepo) DeleteByID(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *MemoryContentRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}
