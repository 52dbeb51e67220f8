package auction

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

// Settle finalizes an ended auction. With a standing bid the held coins are
// captured and paid out and the item goes to the winner; with no bids the
// item returns to the seller. Only the seller may settle.
func (s *service) Settle(ctx context.Context, caller string, auctionID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info("Settle called", "caller", caller, "auction_id", auctionID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	auction, err := tx.GetAuctionForUpdate(ctx, auctionID)
	if err != nil {
		log.Error("Failed to get auction", "error", err)
		return fmt.Errorf("failed to get auction: %w", err)
	}
	if auction == nil {
		return fmt.Errorf("%w: %s", domain.ErrAuctionNotFound, auctionID)
	}
	if auction.Seller != caller {
		return fmt.Errorf("%w: only the seller can settle", domain.ErrNotOwner)
	}
	if auction.Status != domain.AuctionActive {
		return fmt.Errorf("%w: auction is %s", domain.ErrAlreadyFinalized, auction.Status)
	}
	if s.now().Before(auction.EndsAt) {
		return fmt.Errorf("%w: ends at %s", domain.ErrAuctionStillOpen, auction.EndsAt.Format("2006-01-02 15:04:05"))
	}

	closedAt := s.now()
	auction.ClosedAt = &closedAt

	if auction.TopBid == nil {
		// No bids: the item goes back where it came from.
		inv, err := tx.GetInventoryForUpdate(ctx, auction.Seller)
		if err != nil {
			log.Error("Failed to get inventory", "error", err)
			return fmt.Errorf("failed to get inventory: %w", err)
		}
		inventory.ReturnItem(inv, auction.Item)
		auction.Status = domain.AuctionExpired

		if err := tx.UpdateInventory(ctx, auction.Seller, *inv); err != nil {
			log.Error("Failed to update inventory", "error", err)
			return fmt.Errorf("failed to update inventory: %w", err)
		}
		if err := tx.UpdateAuction(ctx, *auction); err != nil {
			log.Error("Failed to update auction", "error", err)
			return fmt.Errorf("failed to update auction: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			log.Error("Failed to commit transaction", "error", err)
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		metrics.AuctionsExpired.WithLabelValues(string(auction.Kind)).Inc()
		if s.notifier != nil {
			s.notifier.AuctionSettled(ctx, auction.Seller, "", auctionID, 0)
		}
		log.Info("Auction expired with no bids", "auction_id", auctionID)
		return nil
	}

	winner := auction.TopBid.Bidder
	amount := auction.TopBid.Amount

	winnerAcct, sellerAcct, err := repository.LockAccountPair(ctx, tx, winner, auction.Seller)
	if err != nil {
		return err
	}
	if err := ledger.Capture(winnerAcct, amount); err != nil {
		return err
	}
	if err := ledger.Refund(sellerAcct, amount); err != nil {
		return err
	}

	inv, err := tx.GetInventoryForUpdate(ctx, winner)
	if err != nil {
		log.Error("Failed to get inventory", "error", err)
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	inventory.ReturnItem(inv, auction.Item)
	auction.Status = domain.AuctionSold

	if err := tx.UpdateAccount(ctx, *winnerAcct); err != nil {
		log.Error("Failed to update winner account", "error", err)
		return fmt.Errorf("failed to update winner account: %w", err)
	}
	if err := tx.UpdateAccount(ctx, *sellerAcct); err != nil {
		log.Error("Failed to update seller account", "error", err)
		return fmt.Errorf("failed to update seller account: %w", err)
	}
	if err := tx.UpdateInventory(ctx, winner, *inv); err != nil {
		log.Error("Failed to update inventory", "error", err)
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	if err := tx.UpdateAuction(ctx, *auction); err != nil {
		log.Error("Failed to update auction", "error", err)
		return fmt.Errorf("failed to update auction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.AuctionsSold.WithLabelValues(string(auction.Kind)).Inc()
	metrics.CoinsCaptured.Add(float64(amount))

	if s.notifier != nil {
		s.notifier.AuctionSettled(ctx, auction.Seller, winner, auctionID, amount)
	}

	log.Info("Auction settled", "auction_id", auctionID, "winner", winner, "amount", amount)
	return nil
}
