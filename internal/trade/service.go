// Package trade implements the fixed-price listing lifecycle: create,
// cancel, buy, and the public/own listing projections.
package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/repository"
)

// Service defines the interface for fixed-price trade operations
type Service interface {
	CreateListing(ctx context.Context, seller, itemID string, price int64) (uuid.UUID, error)
	CancelListing(ctx context.Context, caller string, listingID uuid.UUID) error
	Buy(ctx context.Context, caller string, listingID uuid.UUID) error
	ListPublic(ctx context.Context) ([]domain.ListingSummary, error)
	ListMine(ctx context.Context, caller string) ([]domain.ListingSummary, error)
	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
}

// QuotaCounter tracks per-seller daily listing counts
type QuotaCounter interface {
	Increment(ctx context.Context, seller string, day time.Time) (int64, error)
	Decrement(ctx context.Context, seller string, day time.Time) error
}

// Notifier delivers best-effort trade notifications. Delivery is not
// transactional; a lost notification never affects bookkeeping.
type Notifier interface {
	ListingSold(ctx context.Context, seller string, listingID uuid.UUID, itemName string, price int64)
}

type service struct {
	repo     repository.Trade
	quota    QuotaCounter
	notifier Notifier
	feed     *feedCache
	now      func() time.Time // injectable clock for tests
}

// NewService creates a new trade service. The notifier may be nil.
func NewService(repo repository.Trade, quota QuotaCounter, notifier Notifier) Service {
	return &service{
		repo:     repo,
		quota:    quota,
		notifier: notifier,
		feed:     newFeedCache(),
		now:      time.Now,
	}
}
