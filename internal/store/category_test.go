package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"newsdesk/internal/models"
)

func TestCategoryStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	created, err := s.Create(&models.Category{
		Name:        "Crafts " + suffix,
		Slug:        "crafts-" + suffix,
		Description: "Handmade things",
		Serial:      42,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", created.ID) })

	bySlug, err := s.FindBySlug("crafts-" + suffix)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Errorf("FindBySlug = %+v", bySlug)
	}
	if bySlug.Serial != 42 || bySlug.Description != "Handmade things" {
		t.Errorf("fields not persisted: %+v", bySlug)
	}

	bySerial, err := s.FindBySerial(42)
	if err != nil {
		t.Fatalf("FindBySerial: %v", err)
	}
	if bySerial == nil || bySerial.ID != created.ID {
		t.Errorf("FindBySerial = %+v", bySerial)
	}

	created.Name = "Renamed " + suffix
	created.Serial = 43
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := s.FindByID(created.ID)
	if err != nil || updated == nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if updated.Name != "Renamed "+suffix || updated.Serial != 43 {
		t.Errorf("update not persisted: %+v", updated)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gone, err := s.FindByID(created.ID); err != nil || gone != nil {
		t.Errorf("FindByID after delete = %+v, %v; want nil, nil", gone, err)
	}
}

func TestCategoryStoreDuplicate(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	first, err := s.Create(&models.Category{
		Name:   "Dup " + suffix,
		Slug:   "dup-" + suffix,
		Serial: models.PriorityUnset,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", first.ID) })

	_, err = s.Create(&models.Category{
		Name:   "Dup " + suffix,
		Slug:   "dup-other-" + suffix,
		Serial: models.PriorityUnset,
	})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("duplicate name error = %v, want ErrDuplicateCategory", err)
	}

	_, err = s.Create(&models.Category{
		Name:   "Dup Other " + suffix,
		Slug:   "dup-" + suffix,
		Serial: models.PriorityUnset,
	})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("duplicate slug error = %v, want ErrDuplicateCategory", err)
	}
}

func TestCategoryStoreList(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	a, err := s.Create(&models.Category{Name: "Zeta " + suffix, Slug: "zeta-" + suffix, Serial: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := s.Create(&models.Category{Name: "Alpha " + suffix, Slug: "alpha-" + suffix, Serial: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE id IN ($1, $2)", a.ID, b.ID)
	})

	cats, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	posA, posB := -1, -1
	for i, c := range cats {
		switch c.ID {
		case a.ID:
			posA = i
		case b.ID:
			posB = i
		}
	}
	if posA < 0 || posB < 0 {
		t.Fatal("created categories missing from listing")
	}
	if posB > posA {
		t.Errorf("serial 1 listed after serial 2 (positions %d, %d)", posB, posA)
	}
}
