// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"newsdesk/internal/content"
	"newsdesk/internal/models"
)

// ContentStore handles all content-related database operations. All four
// editorial types share the unified content table.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, type, title, slug, excerpt, body, body_format, published,
	featured, priority, writer_name, reviewer, video_url, category_id,
	author_id, created_at, updated_at`

// scanContent scans a row into a Content struct.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Excerpt, &c.Body, &c.BodyFormat,
		&c.Published, &c.Featured, &c.Priority, &c.WriterName, &c.Reviewer,
		&c.VideoURL, &c.CategoryID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of items matching the query plus the total match
// count. Ordering is ascending priority with newest-first tie-break, or
// purely newest-first when the query asks for it.
func (s *ContentStore) List(q content.ListQuery) ([]models.Content, int, error) {
	where, args := buildContentFilter(q)

	var total int
	countQuery := `SELECT COUNT(*) FROM content` + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	order := ` ORDER BY priority ASC, created_at DESC`
	if q.RecentFirst {
		order = ` ORDER BY created_at DESC`
	}

	query := `SELECT ` + contentColumns + ` FROM content` + where + order
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, total, rows.Err()
}

// buildContentFilter translates a ListQuery into a WHERE clause and its
// positional arguments.
func buildContentFilter(q content.ListQuery) (string, []any) {
	conds := []string{"type = $1"}
	args := []any{q.Type}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR body ILIKE $%d OR excerpt ILIKE $%d)", n, n, n))
	}
	if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if q.Reviewer != "" {
		args = append(args, "%"+q.Reviewer+"%")
		conds = append(conds, fmt.Sprintf("reviewer ILIKE $%d", len(args)))
	}
	if q.AuthorID != nil {
		args = append(args, *q.AuthorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if q.Featured != nil {
		args = append(args, *q.Featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}

	if q.Scope.PublishedOnly {
		if q.Scope.OwnAuthorID != nil {
			args = append(args, *q.Scope.OwnAuthorID)
			conds = append(conds, fmt.Sprintf("(published OR author_id = $%d)", len(args)))
		} else {
			conds = append(conds, "published")
		}
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindByID retrieves an item of the given type by UUID. Returns nil if not found.
func (s *ContentStore) FindByID(t models.ContentType, id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE type = $1 AND id = $2`, t, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves an item of the given type by slug. Returns nil if not found.
func (s *ContentStore) FindBySlug(t models.ContentType, slug string) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE type = $1 AND slug = $2`, t, slug)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// SlugExists reports whether another item of the same type already uses
// the candidate slug. exclude is the id of the record being updated
// (uuid.Nil for creates).
func (s *ContentStore) SlugExists(t models.ContentType, candidate string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM content WHERE type = $1 AND slug = $2 AND id <> $3
		)
	`, t, candidate, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new content item and returns it with the generated ID
// and timestamps. A unique-index rejection on (type, slug) surfaces as
// content.ErrDuplicateSlug.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	row := s.db.QueryRow(`
		INSERT INTO content (type, title, slug, excerpt, body, body_format, published,
		                     featured, priority, writer_name, reviewer, video_url,
		                     category_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.Slug, c.Excerpt, c.Body, c.BodyFormat, c.Published,
		c.Featured, c.Priority, c.WriterName, c.Reviewer, c.VideoURL,
		c.CategoryID, c.AuthorID,
	)
	result, err := scanContent(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create content: %w", content.ErrDuplicateSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// Update modifies an existing content item. author_id is deliberately not
// in the SET list — ownership never changes after creation.
func (s *ContentStore) Update(c *models.Content) error {
	_, err := s.db.Exec(`
		UPDATE content SET
			title = $1, slug = $2, excerpt = $3, body = $4, body_format = $5,
			published = $6, featured = $7, priority = $8, writer_name = $9,
			reviewer = $10, video_url = $11, category_id = $12, updated_at = NOW()
		WHERE id = $13
	`, c.Title, c.Slug, c.Excerpt, c.Body, c.BodyFormat, c.Published,
		c.Featured, c.Priority, c.WriterName, c.Reviewer, c.VideoURL,
		c.CategoryID, c.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("update content: %w", content.ErrDuplicateSlug)
	}
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// Delete removes a content item by type and ID.
func (s *ContentStore) Delete(t models.ContentType, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content WHERE type = $1 AND id = $2`, t, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// CountByType returns the number of content items of the given type.
func (s *ContentStore) CountByType(t models.ContentType) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM content WHERE type = $1`, t).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return count, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// rejection (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
