package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/ledger"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/metrics"
	"github.com/emberhall/bazaar/internal/repository"
)

func (s *service) Bid(ctx context.Context, caller string, auctionID uuid.UUID, amount int64) error {
	log := logger.FromContext(ctx)
	log.Info("Bid called", "caller", caller, "auction_id", auctionID, "amount", amount)

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
	if auction.Status != domain.AuctionActive {
		return fmt.Errorf("%w: auction is %s", domain.ErrAuctionClosed, auction.Status)
	}
	if !s.now().Before(auction.EndsAt) {
		return fmt.Errorf("%w: bidding ended at %s", domain.ErrAuctionClosed, auction.EndsAt.Format("2006-01-02 15:04:05"))
	}
	if auction.Seller == caller {
		return domain.ErrSelfTrade
	}

	required := auction.MinBid
	if auction.TopBid != nil {
		required = auction.TopBid.Amount + domain.MinBidIncrement
	}
	if amount < required {
		return fmt.Errorf("%w: bid %d, need at least %d", domain.ErrBidTooLow, amount, required)
	}

	prev := auction.TopBid
	var escrowed int64

	switch {
	case prev == nil:
		acct, err := tx.GetAccountForUpdate(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to get account %s: %w", caller, err)
		}
		if err := ledger.Hold(acct, amount); err != nil {
			return err
		}
		if err := tx.UpdateAccount(ctx, *acct); err != nil {
			log.Error("Failed to update bidder account", "error", err)
			return fmt.Errorf("failed to update bidder account: %w", err)
		}
		escrowed = amount

	case prev.Bidder == caller:
		// Raising one's own bid holds only the difference; the previous
		// hold stays in place.
		acct, err := tx.GetAccountForUpdate(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to get account %s: %w", caller, err)
		}
		delta := amount - prev.Amount
		if err := ledger.Hold(acct, delta); err != nil {
			return err
		}
		if err := tx.UpdateAccount(ctx, *acct); err != nil {
			log.Error("Failed to update bidder account", "error", err)
			return fmt.Errorf("failed to update bidder account: %w", err)
		}
		escrowed = delta

	default:
		bidder, prevAcct, err := repository.LockAccountPair(ctx, tx, caller, prev.Bidder)
		if err != nil {
			return err
		}
		if err := ledger.Hold(bidder, amount); err != nil {
			return err
		}
		if err := ledger.Release(prevAcct, prev.Amount); err != nil {
			return err
		}
		if err := tx.UpdateAccount(ctx, *bidder); err != nil {
			log.Error("Failed to update bidder account", "error", err)
			return fmt.Errorf("failed to update bidder account: %w", err)
		}
		if err := tx.UpdateAccount(ctx, *prevAcct); err != nil {
			log.Error("Failed to update outbid account", "error", err)
			return fmt.Errorf("failed to update outbid account: %w", err)
		}
		escrowed = amount
	}

	auction.TopBid = &domain.TopBid{Bidder: caller, Amount: amount}
	if err := tx.UpdateAuction(ctx, *auction); err != nil {
		log.Error("Failed to update auction", "error", err)
		return fmt.Errorf("failed to update auction: %w", err)
	}

	record := domain.BidRecord{
		ID:        uuid.New(),
		AuctionID: auctionID,
		Bidder:    caller,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	if err := tx.InsertBid(ctx, record); err != nil {
		log.Error("Failed to insert bid record", "error", err)
		return fmt.Errorf("failed to insert bid record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.BidsPlaced.Inc()
	metrics.CoinsEscrowed.Add(float64(escrowed))

	if s.notifier != nil && prev != nil && prev.Bidder != caller {
		s.notifier.Outbid(ctx, prev.Bidder, auctionID, amount)
	}

	log.Info("Bid accepted", "auction_id", auctionID, "bidder", caller, "amount", amount)
	return nil
}
