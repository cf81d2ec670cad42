package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/content"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/session"
)

// fakeStore is a minimal in-memory content.Store for handler tests.
type fakeStore struct {
	items map[uuid.UUID]*models.Content
	seq   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[uuid.UUID]*models.Content)}
}

func (f *fakeStore) List(q content.ListQuery) ([]models.Content, int, error) {
	var matched []models.Content
	for _, c := range f.items {
		if c.Type != q.Type {
			continue
		}
		if q.Scope.PublishedOnly && !c.Published {
			if q.Scope.OwnAuthorID == nil || c.AuthorID != *q.Scope.OwnAuthorID {
				continue
			}
		}
		if q.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *q.CategoryID) {
			continue
		}
		matched = append(matched, *c)
	}

	if q.RecentFirst {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	} else {
		content.SortItems(matched)
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
		return nil, content.ErrDuplicateSlug
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
		return content.ErrDuplicateSlug
	}
	cp := *c
	f.items[cp.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(t models.ContentType, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

// fakeCategories resolves a fixed category set for the pipeline.
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

// fakeCategoryLister backs the homepage handler.
type fakeCategoryLister struct {
	cats []models.Category
}

func (f *fakeCategoryLister) List() ([]models.Category, error) {
	return append([]models.Category(nil), f.cats...), nil
}

// asPrincipal stamps a principal into the request context the way
// LoadPrincipal would after a successful session lookup.
func asPrincipal(r *http.Request, p *session.Principal) *http.Request {
	if p == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), middleware.PrincipalKey, p))
}

func doRequest(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}
