package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/shramba/internal/db"
)

// newTestUser creates an account and returns its id.
func newTestUser(t *testing.T, database *sql.DB, email string) int64 {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user, err := CreateUser(context.Background(), database, email, string(hash))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	item, err := CreateItem(ctx, database, owner, "Milk", 2, "l", "Dairy", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated id")
	}
	if item.Name != "Milk" || item.Quantity != 2 || item.Unit != "l" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.ExpirationDate != "2024-06-01" {
		t.Errorf("expected expiration 2024-06-01, got %q", item.ExpirationDate)
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestListItemsScopedToOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice@example.com")
	bob := newTestUser(t, database, "bob@example.com")

	CreateItem(ctx, database, alice, "Apples", 5, "pcs", "Fruits", "2024-06-01")
	CreateItem(ctx, database, alice, "Bread", 1, "pcs", "Grains", "2024-05-01")
	CreateItem(ctx, database, bob, "Cheese", 1, "kg", "Dairy", "2024-06-01")

	items, err := ListItems(ctx, database, alice)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for alice, got %d", len(items))
	}
	for _, item := range items {
		if item.OwnerID != alice {
			t.Errorf("item %s leaked from owner %d", item.ID, item.OwnerID)
		}
	}

	// No items is an empty list, not an error.
	carol := newTestUser(t, database, "carol@example.com")
	items, err = ListItems(ctx, database, carol)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items for carol, got %d", len(items))
	}
}

func TestGetItemForeignOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice@example.com")
	bob := newTestUser(t, database, "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Apples", 5, "pcs", "Fruits", "2024-06-01")

	got, err := GetItem(ctx, database, bob, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Error("expected foreign-owned item to be invisible")
	}
}

func TestUpdateItemPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	item, _ := CreateItem(ctx, database, owner, "Milk", 2, "l", "Dairy", "2024-06-01")

	quantity := 5
	err := UpdateItem(ctx, database, owner, item.ID, ItemPatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, owner, item.ID)
	if got.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", got.Quantity)
	}
	// All other fields untouched.
	if got.Name != "Milk" || got.Unit != "l" || got.Category != "Dairy" || got.ExpirationDate != "2024-06-01" {
		t.Errorf("unexpected field change: %+v", got)
	}
}

func TestUpdateItemForeignOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice@example.com")
	bob := newTestUser(t, database, "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Milk", 2, "l", "Dairy", "2024-06-01")

	name := "Stolen"
	err := UpdateItem(ctx, database, bob, item.ID, ItemPatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, _ := GetItem(ctx, database, alice, item.ID)
	if got.Name != "Milk" {
		t.Errorf("foreign update must not apply, got name %q", got.Name)
	}
}

func TestUpdateItemMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	name := "Ghost"
	err := UpdateItem(ctx, database, owner, "no-such-id", ItemPatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// An empty patch still reports missing ids.
	err = UpdateItem(ctx, database, owner, "no-such-id", ItemPatch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty patch, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	item, _ := CreateItem(ctx, database, owner, "Milk", 2, "l", "Dairy", "2024-06-01")

	if err := DeleteItem(ctx, database, owner, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	items, _ := ListItems(ctx, database, owner)
	if len(items) != 0 {
		t.Errorf("expected no items after delete, got %d", len(items))
	}
}

func TestDeleteItemIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	item, _ := CreateItem(ctx, database, owner, "Milk", 2, "l", "Dairy", "2024-06-01")

	// Deleting twice succeeds: delete is idempotent by contract.
	if err := DeleteItem(ctx, database, owner, item.ID); err != nil {
		t.Fatalf("first DeleteItem: %v", err)
	}
	if err := DeleteItem(ctx, database, owner, item.ID); err != nil {
		t.Fatalf("second DeleteItem: %v", err)
	}
}

func TestDeleteItemForeignOwnerNoEffect(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice@example.com")
	bob := newTestUser(t, database, "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Milk", 2, "l", "Dairy", "2024-06-01")

	if err := DeleteItem(ctx, database, bob, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	// Alice's item survives a foreign delete attempt.
	got, _ := GetItem(ctx, database, alice, item.ID)
	if got == nil {
		t.Error("foreign delete must not remove the item")
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	item, _ := CreateItem(ctx, database, owner, "Milk", 2, "l", "Dairy", "2024-06-01")

	imageData := []byte("fake image data")
	if err := SetItemImage(ctx, database, owner, item.ID, imageData, "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, owner, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestItemImageForeignOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice@example.com")
	bob := newTestUser(t, database, "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Milk", 2, "l", "Dairy", "2024-06-01")

	err := SetItemImage(ctx, database, bob, item.ID, []byte("x"), "image/jpeg")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateItemRejectsNonPositiveQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "a@example.com")

	// The CHECK constraint is the last line of defense behind handler
	// validation.
	if _, err := CreateItem(ctx, database, owner, "Milk", 0, "l", "Dairy", "2024-06-01"); err == nil {
		t.Error("expected error for zero quantity")
	}
}
