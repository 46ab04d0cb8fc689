package store

import (
	"context"
	"time"
)

type CategoryStore struct {
	db DB
}

type Category struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	ParentID  *int      `db:"parent_id"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) ListByUser(ctx context.Context, userID int, includeInactive bool) ([]Category, error) {
	query := `
		SELECT id, user_id, name, type, parent_id, active, created_at
		FROM categories
		WHERE user_id = $1
	`
	if !includeInactive {
		query += " AND active = TRUE"
	}
	query += " ORDER BY type, name"
	var rows []Category
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, userID, categoryID int) (Category, error) {
	var row Category
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, name, type, parent_id, active, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	if err != nil {
		return Category{}, err
	}
	return row, nil
}

func (s *CategoryStore) Create(ctx context.Context, userID int, name, categoryType string, parentID *int) (int, error) {
	var id int
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO categories (user_id, name, type, parent_id, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id
	`, userID, name, categoryType, parentID)
	return id, err
}

func (s *CategoryStore) Update(ctx context.Context, userID, categoryID int, name *string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name = COALESCE($1, name), updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND active = TRUE
	`, name, categoryID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *CategoryStore) Deactivate(ctx context.Context, userID, categoryID int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND active = TRUE
	`, categoryID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Depth returns the length of the parent chain above the given category,
// the category itself included. A root category has depth 1.
func (s *CategoryStore) Depth(ctx context.Context, userID, categoryID int) (int, error) {
	var depth int
	err := s.db.GetContext(ctx, &depth, `
		WITH RECURSIVE chain AS (
			SELECT id, parent_id, 1 AS depth
			FROM categories
			WHERE id = $1 AND user_id = $2
			UNION ALL
			SELECT c.id, c.parent_id, chain.depth + 1
			FROM categories c
			JOIN chain ON c.id = chain.parent_id
		)
		SELECT COALESCE(MAX(depth), 0) FROM chain
	`, categoryID, userID)
	return depth, err
}

func (s *CategoryStore) CountActiveTransactions(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM transactions
		WHERE category_id = $1 AND active = TRUE
	`, categoryID)
	return count, err
}
