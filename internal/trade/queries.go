package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/logger"
)

// ListPublic returns the feed of active listings. Read-only; served from a
// short-lived cache between mutations.
func (s *service) ListPublic(ctx context.Context) ([]domain.ListingSummary, error) {
	if rows, ok := s.feed.Get(); ok {
		return rows, nil
	}

	listings, err := s.repo.ListActiveListings(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list active listings", "error", err)
		return nil, fmt.Errorf("failed to list active listings: %w", err)
	}

	rows := make([]domain.ListingSummary, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, l.Summary())
	}
	s.feed.Set(rows)
	return rows, nil
}

// ListMine returns all of the caller's listings, terminal ones included
func (s *service) ListMine(ctx context.Context, caller string) ([]domain.ListingSummary, error) {
	listings, err := s.repo.ListListingsBySeller(ctx, caller)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list seller listings", "error", err)
		return nil, fmt.Errorf("failed to list seller listings: %w", err)
	}

	rows := make([]domain.ListingSummary, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, l.Summary())
	}
	return rows, nil
}

func (s *service) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get listing", "error", err)
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
	}
	return listing, nil
}
