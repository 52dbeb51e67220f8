package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
)

// Trade defines the interface for fixed-price listing persistence
type Trade interface {
	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
	ListActiveListings(ctx context.Context) ([]domain.Listing, error)
	ListListingsBySeller(ctx context.Context, seller string) ([]domain.Listing, error)
	BeginTx(ctx context.Context) (TradeTx, error)
}

// TradeTx extends Tx with listing operations. Every mutating listing
// operation runs inside one TradeTx so the listing, accounts, inventory
// and equipment records commit or roll back together.
type TradeTx interface {
	Tx

	GetListingForUpdate(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
	InsertListing(ctx context.Context, listing domain.Listing) error
	UpdateListing(ctx context.Context, listing domain.Listing) error

	GetEquipmentForUpdate(ctx context.Context, ownerID string) ([]domain.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment domain.Equipment) error
}
