package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// ErrNotFound is returned when an item does not exist or is owned by a
// different user. The two cases are deliberately indistinguishable so that
// item ids cannot be probed across accounts.
var ErrNotFound = errors.New("item not found")

// ItemPatch holds optional field updates for an item. Nil fields are left
// untouched. The owner is never updatable.
type ItemPatch struct {
	Name           *string
	Quantity       *int
	Unit           *string
	Category       *string
	ExpirationDate *string
}

// CreateItem creates a new item owned by ownerID and returns it.
func CreateItem(ctx context.Context, db *sql.DB, ownerID int64, name string, quantity int, unit, category, expirationDate string) (*model.Item, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, owner_id, name, quantity, unit, category, expiration_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, name, quantity, unit, category, expirationDate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, ownerID, id)
}

// GetItem returns an item by ID, scoped to its owner. Returns nil if the
// item does not exist or belongs to another user.
func GetItem(ctx context.Context, db *sql.DB, ownerID int64, id string) (*model.Item, error) {
	item := &model.Item{}
	var imageMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, quantity, unit, category, expiration_date, image_mime, created_at
		 FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	).Scan(&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
		&item.ExpirationDate, &imageMime, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.ImageMime = imageMime.String
	return item, nil
}

// ListItems returns all items owned by ownerID, soonest expiration first.
func ListItems(ctx context.Context, db *sql.DB, ownerID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, owner_id, name, quantity, unit, category, expiration_date, image_mime, created_at
		 FROM items WHERE owner_id = ? ORDER BY expiration_date, name`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var imageMime sql.NullString
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &item.Unit,
			&item.Category, &item.ExpirationDate, &imageMime, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.ImageMime = imageMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem applies a partial update to an item owned by ownerID. Fields
// not present in the patch keep their current values. Returns ErrNotFound
// if the item does not exist or belongs to another user.
func UpdateItem(ctx context.Context, db *sql.DB, ownerID int64, id string, patch ItemPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Unit != nil {
		sets = append(sets, "unit = ?")
		args = append(args, *patch.Unit)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.ExpirationDate != nil {
		sets = append(sets, "expiration_date = ?")
		args = append(args, *patch.ExpirationDate)
	}

	if len(sets) == 0 {
		// Nothing to change, but still report foreign/missing ids.
		item, err := GetItem(ctx, db, ownerID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrNotFound
		}
		return nil
	}

	args = append(args, id, ownerID)
	result, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ? AND owner_id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem permanently removes an item owned by ownerID. Deleting an id
// that does not exist (or was already deleted) succeeds, so the operation
// is idempotent. An id owned by another user is equally a no-op.
func DeleteItem(ctx context.Context, db *sql.DB, ownerID int64, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemImage stores an item's photo. Returns ErrNotFound for missing or
// foreign-owned items.
func SetItemImage(ctx context.Context, db *sql.DB, ownerID int64, id string, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ? WHERE id = ? AND owner_id = ?`,
		image, mime, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking image update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemImage returns an item's photo and MIME type. Returns nil data if
// the item has no photo or is not visible to ownerID.
func GetItemImage(ctx context.Context, db *sql.DB, ownerID int64, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}
