// Package auction implements the timed competitive sale lifecycle:
// create, bid, settle, and the auction projections. Escrow is built on the
// ledger hold/release/capture primitives.
package auction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/repository"
)

// Service defines the interface for auction operations
type Service interface {
	CreateAuction(ctx context.Context, seller, itemID string, kind domain.AuctionKind, minBid int64, durationMinutes int) (uuid.UUID, error)
	Bid(ctx context.Context, caller string, auctionID uuid.UUID, amount int64) error
	Settle(ctx context.Context, caller string, auctionID uuid.UUID) error
	ListPublic(ctx context.Context, viewer string, kind *domain.AuctionKind) ([]domain.AuctionSummary, error)
	ListMine(ctx context.Context, caller string) ([]domain.AuctionSummary, error)
	ListMyBids(ctx context.Context, caller string) ([]domain.AuctionSummary, error)
	GetAuction(ctx context.Context, viewer string, auctionID uuid.UUID) (*domain.Auction, error)
	ListBids(ctx context.Context, auctionID uuid.UUID) ([]domain.BidRecord, error)
}

// Notifier delivers best-effort auction notifications. Delivery is not
// transactional; a lost notification never affects bookkeeping.
type Notifier interface {
	Outbid(ctx context.Context, bidder string, auctionID uuid.UUID, newAmount int64)
	AuctionSettled(ctx context.Context, seller, winner string, auctionID uuid.UUID, amount int64)
}

type service struct {
	repo     repository.Auction
	notifier Notifier
	now      func() time.Time // injectable clock for tests
}

// NewService creates a new auction service. The notifier may be nil.
func NewService(repo repository.Auction, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}
