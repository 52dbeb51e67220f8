package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/logger"
)

// ListPublic returns active auctions, optionally filtered by kind. Item
// identity on special auctions is withheld unless the viewer is the seller.
func (s *service) ListPublic(ctx context.Context, viewer string, kind *domain.AuctionKind) ([]domain.AuctionSummary, error) {
	auctions, err := s.repo.ListActiveAuctions(ctx, kind)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list active auctions", "error", err)
		return nil, fmt.Errorf("failed to list active auctions: %w", err)
	}
	return summarize(auctions, viewer), nil
}

// ListMine returns all of the caller's auctions, terminal ones included
func (s *service) ListMine(ctx context.Context, caller string) ([]domain.AuctionSummary, error) {
	auctions, err := s.repo.ListAuctionsBySeller(ctx, caller)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list seller auctions", "error", err)
		return nil, fmt.Errorf("failed to list seller auctions: %w", err)
	}
	return summarize(auctions, caller), nil
}

// ListMyBids returns auctions the caller has bid on
func (s *service) ListMyBids(ctx context.Context, caller string) ([]domain.AuctionSummary, error) {
	auctions, err := s.repo.ListAuctionsByBidder(ctx, caller)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list bidder auctions", "error", err)
		return nil, fmt.Errorf("failed to list bidder auctions: %w", err)
	}
	return summarize(auctions, caller), nil
}

func (s *service) GetAuction(ctx context.Context, viewer string, auctionID uuid.UUID) (*domain.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get auction", "error", err)
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	if auction == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAuctionNotFound, auctionID)
	}
	redacted := auction.RedactFor(viewer)
	return &redacted, nil
}

// ListBids returns the append-only bid history of an auction
func (s *service) ListBids(ctx context.Context, auctionID uuid.UUID) ([]domain.BidRecord, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get auction", "error", err)
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	if auction == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAuctionNotFound, auctionID)
	}

	bids, err := s.repo.ListBids(ctx, auctionID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list bids", "error", err)
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

func summarize(auctions []domain.Auction, viewer string) []domain.AuctionSummary {
	rows := make([]domain.AuctionSummary, 0, len(auctions))
	for _, a := range auctions {
		rows = append(rows, a.SummaryFor(viewer))
	}
	return rows
}
