package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberhall/bazaar/internal/domain"
	"github.com/emberhall/bazaar/internal/repository"
)

const auctionColumns = `auction_id, status, kind, seller, item, min_bid, top_bidder, top_amount, ends_at, created_at, closed_at`

// AuctionRepository implements repository.Auction for PostgreSQL
type AuctionRepository struct {
	db *pgxpool.Pool
}

// NewAuctionRepository creates a new AuctionRepository
func NewAuctionRepository(db *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{db: db}
}

// AuctionTx implements repository.AuctionTx
type AuctionTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *AuctionRepository) BeginTx(ctx context.Context) (repository.AuctionTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &AuctionTx{tx: tx}, nil
}

func (t *AuctionTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *AuctionTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func buildAuction(itemData []byte, topBidder *string, topAmount *int64, a *domain.Auction) error {
	item, err := unmarshalItem(itemData)
	if err != nil {
		return err
	}
	a.Item = item

	// top_bidder and top_amount are set and cleared together
	if topBidder != nil && topAmount != nil {
		a.TopBid = &domain.TopBid{Bidder: *topBidder, Amount: *topAmount}
	}
	return nil
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	var a domain.Auction
	var itemData []byte
	var topBidder *string
	var topAmount *int64
	err := row.Scan(&a.ID, &a.Status, &a.Kind, &a.Seller, &itemData, &a.MinBid,
		&topBidder, &topAmount, &a.EndsAt, &a.CreatedAt, &a.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan auction: %w", err)
	}

	if err := buildAuction(itemData, topBidder, topAmount, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func queryAuctions(ctx context.Context, db dbtx, query string, args ...any) ([]domain.Auction, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query auctions: %w", err)
	}
	defer rows.Close()

	var auctions []domain.Auction
	for rows.Next() {
		var a domain.Auction
		var itemData []byte
		var topBidder *string
		var topAmount *int64
		if err := rows.Scan(&a.ID, &a.Status, &a.Kind, &a.Seller, &itemData, &a.MinBid,
			&topBidder, &topAmount, &a.EndsAt, &a.CreatedAt, &a.ClosedAt); err != nil {
			return nil, fmt.Errorf("failed to scan auction row: %w", err)
		}
		if err := buildAuction(itemData, topBidder, topAmount, &a); err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read auction rows: %w", err)
	}
	if auctions == nil {
		auctions = []domain.Auction{}
	}
	return auctions, nil
}

// GetAuction retrieves an auction by id, nil when absent
func (r *AuctionRepository) GetAuction(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	return scanAuction(r.db.QueryRow(ctx,
		`SELECT `+auctionColumns+` FROM auctions WHERE auction_id = $1`, auctionID))
}

// ListActiveAuctions returns active auctions ending soonest first,
// optionally filtered by kind
func (r *AuctionRepository) ListActiveAuctions(ctx context.Context, kind *domain.AuctionKind) ([]domain.Auction, error) {
	if kind != nil {
		return queryAuctions(ctx, r.db,
			`SELECT `+auctionColumns+` FROM auctions WHERE status = $1 AND kind = $2 ORDER BY ends_at ASC`,
			domain.AuctionActive, *kind)
	}
	return queryAuctions(ctx, r.db,
		`SELECT `+auctionColumns+` FROM auctions WHERE status = $1 ORDER BY ends_at ASC`,
		domain.AuctionActive)
}

// ListAuctionsBySeller returns all of a seller's auctions, newest first
func (r *AuctionRepository) ListAuctionsBySeller(ctx context.Context, seller string) ([]domain.Auction, error) {
	return queryAuctions(ctx, r.db,
		`SELECT `+auctionColumns+` FROM auctions WHERE seller = $1 ORDER BY created_at DESC`,
		seller)
}

// ListAuctionsByBidder returns auctions the bidder has placed at least one
// bid on, newest first
func (r *AuctionRepository) ListAuctionsByBidder(ctx context.Context, bidder string) ([]domain.Auction, error) {
	return queryAuctions(ctx, r.db, `
		SELECT `+auctionColumns+` FROM auctions
		WHERE auction_id IN (SELECT DISTINCT auction_id FROM auction_bids WHERE bidder = $1)
		ORDER BY created_at DESC`,
		bidder)
}

// ListBids returns the append-only bid history, oldest first
func (r *AuctionRepository) ListBids(ctx context.Context, auctionID uuid.UUID) ([]domain.BidRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT bid_id, auction_id, bidder, amount, created_at FROM auction_bids
		 WHERE auction_id = $1 ORDER BY created_at ASC`,
		auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bids: %w", err)
	}
	defer rows.Close()

	var bids []domain.BidRecord
	for rows.Next() {
		var b domain.BidRecord
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.Bidder, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bid row: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bid rows: %w", err)
	}
	if bids == nil {
		bids = []domain.BidRecord{}
	}
	return bids, nil
}

// GetAuctionForUpdate locks and retrieves an auction row, nil when absent
func (t *AuctionTx) GetAuctionForUpdate(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	return scanAuction(t.tx.QueryRow(ctx,
		`SELECT `+auctionColumns+` FROM auctions WHERE auction_id = $1 FOR UPDATE`, auctionID))
}

// InsertAuction stores a new auction
func (t *AuctionTx) InsertAuction(ctx context.Context, auction domain.Auction) error {
	itemJSON, err := marshalItem(auction.Item)
	if err != nil {
		return err
	}

	var topBidder *string
	var topAmount *int64
	if auction.TopBid != nil {
		topBidder = &auction.TopBid.Bidder
		topAmount = &auction.TopBid.Amount
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO auctions (auction_id, status, kind, seller, item, min_bid, top_bidder, top_amount, ends_at, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		auction.ID, auction.Status, auction.Kind, auction.Seller, itemJSON, auction.MinBid,
		topBidder, topAmount, auction.EndsAt, auction.CreatedAt, auction.ClosedAt)
	if err != nil {
		return fmt.Errorf("failed to insert auction: %w", err)
	}
	return nil
}

// UpdateAuction stores the auction's mutable fields
func (t *AuctionTx) UpdateAuction(ctx context.Context, auction domain.Auction) error {
	var topBidder *string
	var topAmount *int64
	if auction.TopBid != nil {
		topBidder = &auction.TopBid.Bidder
		topAmount = &auction.TopBid.Amount
	}

	_, err := t.tx.Exec(ctx, `
		UPDATE auctions SET status = $2, top_bidder = $3, top_amount = $4, closed_at = $5
		WHERE auction_id = $1`,
		auction.ID, auction.Status, topBidder, topAmount, auction.ClosedAt)
	if err != nil {
		return fmt.Errorf("failed to update auction: %w", err)
	}
	return nil
}

// InsertBid appends an immutable bid record
func (t *AuctionTx) InsertBid(ctx context.Context, bid domain.BidRecord) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO auction_bids (bid_id, auction_id, bidder, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		bid.ID, bid.AuctionID, bid.Bidder, bid.Amount, bid.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

func (t *AuctionTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, t.tx, accountID, true)
}

func (t *AuctionTx) UpdateAccount(ctx context.Context, account domain.Account) error {
	return updateAccount(ctx, t.tx, account)
}

func (t *AuctionTx) GetInventoryForUpdate(ctx context.Context, ownerID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, ownerID, true)
}

func (t *AuctionTx) UpdateInventory(ctx context.Context, ownerID string, inventory domain.Inventory) error {
	return updateInventory(ctx, t.tx, ownerID, inventory)
}

func (t *AuctionTx) GetEquipmentForUpdate(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	return getEquipmentForUpdate(ctx, t.tx, ownerID)
}

func (t *AuctionTx) UpdateEquipment(ctx context.Context, equipment domain.Equipment) error {
	return updateEquipment(ctx, t.tx, equipment)
}

// Ensure interface compliance
var (
	_ repository.Auction   = (*AuctionRepository)(nil)
	_ repository.AuctionTx = (*AuctionTx)(nil)
)
