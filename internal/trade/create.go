package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/inventory"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/metrics"
	"github.com/emberhall/bazaar/internal/pricing"
	"github.com/emberhall/bazaar/internal/repository"
)

func (s *service) CreateListing(ctx context.Context, seller, itemID string, price int64) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	log.Info("CreateListing called", "seller", seller, "item_id", itemID, "price", price)

	if price <= 0 {
		return uuid.Nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}

	// Take the quota slot before doing any work; the counter is the only
	// state touched outside the transaction, so give it back if the
	// listing doesn't materialize.
	day := s.now()
	count, err := s.quota.Increment(ctx, seller, day)
	if err != nil {
		log.Error("Failed to increment listing quota", "error", err)
		return uuid.Nil, fmt.Errorf("failed to check listing quota: %w", err)
	}
	if count > domain.MaxDailyListings {
		return uuid.Nil, fmt.Errorf("%w: %d listings today (max %d)",
			domain.ErrQuotaExceeded, count, domain.MaxDailyListings)
	}

	listingID, err := s.createListingTx(ctx, seller, itemID, price)
	if err != nil {
		if derr := s.quota.Decrement(ctx, seller, day); derr != nil {
			log.Warn("Failed to return quota slot", "error", derr, "seller", seller)
		}
		return uuid.Nil, err
	}

	s.feed.Invalidate()
	log.Info("Listing created", "listing_id", listingID, "seller", seller, "price", price)
	return listingID, nil
}

func (s *service) createListingTx(ctx context.Context, seller, itemID string, price int64) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryForUpdate(ctx, seller)
	if err != nil {
		log.Error("Failed to get inventory", "error", err)
		return uuid.Nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	equipment, err := tx.GetEquipmentForUpdate(ctx, seller)
	if err != nil {
		log.Error("Failed to get equipment", "error", err)
		return uuid.Nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	item, err := inventory.ExtractItem(inv, equipment, itemID)
	if err != nil {
		return uuid.Nil, err
	}

	base := pricing.BasePrice(*item)
	if base <= 0 {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrNotSellable, item.Name)
	}
	if !pricing.InWindow(price, base) {
		min, max := pricing.Bounds(base)
		return uuid.Nil, fmt.Errorf("%w: %d not in [%d, %d]", domain.ErrInvalidPrice, price, min, max)
	}

	listing := domain.Listing{
		ID:        uuid.New(),
		Status:    domain.ListingActive,
		Seller:    seller,
		Price:     price,
		Item:      *item,
		CreatedAt: s.now(),
	}

	// The extracted item must land in the new listing inside this same
	// transaction; a partial failure rolls everything back together.
	if err := tx.InsertListing(ctx, listing); err != nil {
		log.Error("Failed to insert listing", "error", err)
		return uuid.Nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	if err := tx.UpdateInventory(ctx, seller, *inv); err != nil {
		log.Error("Failed to update inventory", "error", err)
		return uuid.Nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	for _, eq := range equipment {
		if err := tx.UpdateEquipment(ctx, eq); err != nil {
			log.Error("Failed to update equipment", "error", err)
			return uuid.Nil, fmt.Errorf("failed to update equipment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ListingsCreated.WithLabelValues(string(item.Rarity)).Inc()
	return listing.ID, nil
}
