package auction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/inventory"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/metrics"
	"github.com/emberhall/bazaar/internal/pricing"
	"github.com/emberhall/bazaar/internal/repository"
)

func (s *service) CreateAuction(ctx context.Context, seller, itemID string, kind domain.AuctionKind, minBid int64, durationMinutes int) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	log.Info("CreateAuction called", "seller", seller, "item_id", itemID, "kind", kind, "min_bid", minBid, "duration_minutes", durationMinutes)

	if kind != domain.AuctionNormal && kind != domain.AuctionSpecial {
		return uuid.Nil, fmt.Errorf("%w: unknown auction kind %q", domain.ErrInvalidInput, kind)
	}
	if minBid <= 0 {
		return uuid.Nil, fmt.Errorf("%w: minimum bid must be positive", domain.ErrInvalidInput)
	}
	// Short durations are floored, not rejected
	duration := time.Duration(durationMinutes) * time.Minute
	if duration < domain.MinAuctionDuration {
		duration = domain.MinAuctionDuration
	}

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

	if pricing.BasePrice(*item) <= 0 {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrNotSellable, item.Name)
	}

	now := s.now()
	auction := domain.Auction{
		ID:        uuid.New(),
		Status:    domain.AuctionActive,
		Kind:      kind,
		Seller:    seller,
		Item:      *item,
		MinBid:    minBid,
		EndsAt:    now.Add(duration),
		CreatedAt: now,
	}

	if err := tx.InsertAuction(ctx, auction); err != nil {
		log.Error("Failed to insert auction", "error", err)
		return uuid.Nil, fmt.Errorf("failed to insert auction: %w", err)
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

	metrics.AuctionsCreated.WithLabelValues(string(kind)).Inc()
	log.Info("Auction created", "auction_id", auction.ID, "seller", seller, "ends_at", auction.EndsAt)
	return auction.ID, nil
}
