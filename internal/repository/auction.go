package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
)

// Auction defines the interface for auction persistence
type Auction interface {
	GetAuction(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error)
	ListActiveAuctions(ctx context.Context, kind *domain.AuctionKind) ([]domain.Auction, error)
	ListAuctionsBySeller(ctx context.Context, seller string) ([]domain.Auction, error)
	ListAuctionsByBidder(ctx context.Context, bidder string) ([]domain.Auction, error)
	ListBids(ctx context.Context, auctionID uuid.UUID) ([]domain.BidRecord, error)
	BeginTx(ctx context.Context) (AuctionTx, error)
}

// AuctionTx extends Tx with auction operations. Bids, holds and releases
// on the same auction serialize on the locked auction row.
type AuctionTx interface {
	Tx

	GetAuctionForUpdate(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error)
	InsertAuction(ctx context.Context, auction domain.Auction) error
	UpdateAuction(ctx context.Context, auction domain.Auction) error

	// InsertBid appends an immutable bid record for audit
	InsertBid(ctx context.Context, bid domain.BidRecord) error

	GetEquipmentForUpdate(ctx context.Context, ownerID string) ([]domain.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment domain.Equipment) error
}
