package repository

import (
	"context"

	"github.com/emberhall/bazaar/internal/domain"
)

// Tx defines the operations shared by every marketplace transaction.
// Row-level reads take locks so competing writers on the same record
// serialize inside the store.
type Tx interface {
	GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	GetInventoryForUpdate(ctx context.Context, ownerID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, ownerID string, inventory domain.Inventory) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
