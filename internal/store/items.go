package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"warehouse-ledger/internal/model"
)

// ListItems returns all inventory items ordered by name.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, current_stock, unit, created_at FROM items ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.CurrentStock, &item.Unit, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, current_stock, unit, created_at FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.CurrentStock, &item.Unit, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// AddItem creates a new inventory item with its starting stock.
// Names are unique across all items.
func AddItem(ctx context.Context, db *sql.DB, name string, initialStock int, unit string) (*model.Item, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", model.ErrInvalidArgument)
	}
	if initialStock < 0 {
		return nil, fmt.Errorf("%w: initial stock must not be negative", model.ErrInvalidArgument)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, current_stock, unit) VALUES (?, ?, ?)`,
		name, initialStock, unit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("item %q: %w", name, model.ErrDuplicateName)
		}
		return nil, fmt.Errorf("adding item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// SetStock overwrites an item's stock with an absolute value,
// preserving name and unit. No delta math happens here; callers
// compute the new value from the stock they read.
func SetStock(ctx context.Context, db *sql.DB, id int64, newStock int) error {
	if newStock < 0 {
		return fmt.Errorf("%w: stock must not be negative", model.ErrInvalidArgument)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET current_stock = ? WHERE id = ?`, newStock, id,
	)
	if err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
