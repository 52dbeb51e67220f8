package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/inventory"
	"github.com/emberhall/bazaar/internal/ledger"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/metrics"
	"github.com/emberhall/bazaar/internal/repository"
)

func (s *service) Buy(ctx context.Context, caller string, listingID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info("Buy called", "caller", caller, "listing_id", listingID)

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
	if listing.Status != domain.ListingActive {
		return fmt.Errorf("%w: listing is %s", domain.ErrAlreadyFinalized, listing.Status)
	}
	if listing.Seller == caller {
		return domain.ErrSelfTrade
	}

	buyer, sellerAcct, err := repository.LockAccountPair(ctx, tx, caller, listing.Seller)
	if err != nil {
		return err
	}

	if err := ledger.Pay(buyer, listing.Price); err != nil {
		return err
	}
	if err := ledger.Refund(sellerAcct, listing.Price); err != nil {
		return err
	}

	inv, err := tx.GetInventoryForUpdate(ctx, caller)
	if err != nil {
		log.Error("Failed to get inventory", "error", err)
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	inventory.ReturnItem(inv, listing.Item)

	closedAt := s.now()
	listing.Status = domain.ListingSold
	listing.Buyer = &caller
	listing.ClosedAt = &closedAt

	if err := tx.UpdateAccount(ctx, *buyer); err != nil {
		log.Error("Failed to update buyer account", "error", err)
		return fmt.Errorf("failed to update buyer account: %w", err)
	}
	if err := tx.UpdateAccount(ctx, *sellerAcct); err != nil {
		log.Error("Failed to update seller account", "error", err)
		return fmt.Errorf("failed to update seller account: %w", err)
	}
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

	metrics.ListingsSold.WithLabelValues(string(listing.Item.Rarity)).Inc()
	s.feed.Invalidate()

	// Post-commit, best-effort: may be skipped or repeated under store
	// retry, never affects bookkeeping.
	if s.notifier != nil {
		s.notifier.ListingSold(ctx, listing.Seller, listing.ID, listing.Item.Name, listing.Price)
	}

	log.Info("Listing sold", "listing_id", listingID, "buyer", caller, "price", listing.Price)
	return nil
}
