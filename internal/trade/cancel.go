package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/inventory"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/metrics"
	"github.com/emberhall/bazaar/internal/repository"
)

func (s *service) CancelListing(ctx context.Context, caller string, listingID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info("CancelListing called", "caller", caller, "listing_id", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		log.Error("Failed to get listing", "error", err)
		return fmt.Errorf("failed to get listing: %w", err)
	}
	if listing == nil {
		return fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
	}
	if listing.Seller != caller {
		return fmt.Errorf("%w: listing %s belongs to another seller", domain.ErrNotOwner, listingID)
	}
	if listing.Status != domain.ListingActive {
		return fmt.Errorf("%w: listing is %s", domain.ErrAlreadyFinalized, listing.Status)
	}

	inv, err := tx.GetInventoryForUpdate(ctx, caller)
	if err != nil {
		log.Error("Failed to get inventory", "error", err)
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	inventory.ReturnItem(inv, listing.Item)

	closedAt := s.now()
	listing.Status = domain.ListingCancelled
	listing.ClosedAt = &closedAt

	if err := tx.UpdateInventory(ctx, caller, *inv); err != nil {
		log.Error("Failed to update inventory", "error", err)
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	if err := tx.UpdateListing(ctx, *listing); err != nil {
		log.Error("Failed to update listing", "error", err)
		return fmt.Errorf("failed to update listing: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ListingsCancelled.Inc()
	s.feed.Invalidate()
	log.Info("Listing cancelled", "listing_id", listingID, "seller", caller)
	return nil
}
