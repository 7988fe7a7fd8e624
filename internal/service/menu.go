package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sazon/internal/model"
)

type MenuService struct {
	db *sql.DB
}

func NewMenuService(db *sql.DB) *MenuService {
	return &MenuService{db: db}
}

const menuColumns = `id, name, description, price, category, stock, image, is_active`

func (s *MenuService) ListActive(ctx context.Context) ([]model.MenuItem, error) {
	return s.list(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE is_active = TRUE ORDER BY category, name`)
}

func (s *MenuService) ListAll(ctx context.Context) ([]model.MenuItem, error) {
	return s.list(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
}

func (s *MenuService) list(ctx context.Context, query string) ([]model.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Stock, &m.Image, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id int64) (*model.MenuItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id)

	var m model.MenuItem
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Stock, &m.Image, &m.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

// Save creates the item when ID is zero and updates it otherwise. An empty
// Image on update keeps the stored image path. Saving always reactivates the
// item.
func (s *MenuService) Save(ctx context.Context, item *model.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if item.Price <= 0 {
		return &ValidationError{Msg: "price must be positive"}
	}
	if item.Stock < 0 {
		return &ValidationError{Msg: "stock must not be negative"}
	}
	if !model.ValidCategory(item.Category) {
		return &ValidationError{Msg: "unknown category: " + item.Category}
	}

	if item.ID == 0 {
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO menu_items (name, description, price, category, stock, image, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE) RETURNING id`,
			item.Name, item.Description, item.Price, item.Category, item.Stock, item.Image,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert menu item: %w", err)
		}
		item.IsActive = true
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE menu_items
		 SET name = $1, description = $2, price = $3, category = $4, stock = $5,
		     image = COALESCE(NULLIF($6, ''), image), is_active = TRUE
		 WHERE id = $7`,
		item.Name, item.Description, item.Price, item.Category, item.Stock, item.Image, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	item.IsActive = true
	return nil
}

// SetActive toggles the soft-delete flag. Historical order lines are
// untouched; they carry their own price snapshots.
func (s *MenuService) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE menu_items SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
