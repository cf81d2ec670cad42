package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// fakeStore is an in-memory Store used by pipeline tests. It mirrors the
// SQL implementation's visible behavior: type-scoped lookups, advisory
// slug checks, ErrDuplicateSlug on constraint violation, and scope-aware
// listings.
type fakeStore struct {
	items map[uuid.UUID]*models.Content
	seq   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[uuid.UUID]*models.Content)}
}

func (f *fakeStore) List(q ListQuery) ([]models.Content, int, error) {
	var matched []models.Content
	for _, c := range f.items {
		if !f.matches(c, q) {
			continue
		}
		matched = append(matched, *c)
	}

	if q.RecentFirst {
		// Newest first, stable enough for the small fixtures in tests.
		for i := 0; i < len(matched); i++ {
			for j := i + 1; j < len(matched); j++ {
				if matched[j].CreatedAt.After(matched[i].CreatedAt) {
					matched[i], matched[j] = matched[j], matched[i]
				}
			}
		}
	} else {
		SortItems(matched)
	}

	total := len(matched)
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func (f *fakeStore) matches(c *models.Content, q ListQuery) bool {
	if c.Type != q.Type {
		return false
	}
	if q.Scope.PublishedOnly && !c.Published {
		if q.Scope.OwnAuthorID == nil || c.AuthorID != *q.Scope.OwnAuthorID {
			return false
		}
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Body), needle) &&
			!strings.Contains(strings.ToLower(c.Excerpt), needle) {
			return false
		}
	}
	if q.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *q.CategoryID) {
		return false
	}
	if q.Reviewer != "" && (c.Reviewer == nil || *c.Reviewer != q.Reviewer) {
		return false
	}
	if q.AuthorID != nil && c.AuthorID != *q.AuthorID {
		return false
	}
	if q.Featured != nil && c.Featured != *q.Featured {
		return false
	}
	return true
}

func (f *fakeStore) FindByID(t models.ContentType, id uuid.UUID) (*models.Content, error) {
	c, ok := f.items[id]
	if !ok || c.Type != t {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) FindBySlug(t models.ContentType, slug string) (*models.Content, error) {
	for _, c := range f.items {
		if c.Type == t && c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SlugExists(t models.ContentType, candidate string, exclude uuid.UUID) (bool, error) {
	for _, c := range f.items {
		if c.Type == t && c.Slug == candidate && c.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(c *models.Content) (*models.Content, error) {
	if taken, _ := f.SlugExists(c.Type, c.Slug, uuid.Nil); taken {
		return nil, ErrDuplicateSlug
	}
	cp := *c
	cp.ID = uuid.New()
	f.seq++
	cp.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Minute)
	cp.UpdatedAt = cp.CreatedAt
	f.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) Update(c *models.Content) error {
	if taken, _ := f.SlugExists(c.Type, c.Slug, c.ID); taken {
		return ErrDuplicateSlug
	}
	cp := *c
	cp.UpdatedAt = cp.CreatedAt.Add(time.Hour)
	f.items[cp.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(t models.ContentType, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

// fakeCategories resolves categories from a fixed set.
type fakeCategories struct {
	cats []models.Category
}

func (f *fakeCategories) FindByID(id uuid.UUID) (*models.Category, error) {
	for i := range f.cats {
		if f.cats[i].ID == id {
			return &f.cats[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindBySlug(slug string) (*models.Category, error) {
	for i := range f.cats {
		if f.cats[i].Slug == slug {
			return &f.cats[i], nil
		}
	}
	return nil, nil
}
