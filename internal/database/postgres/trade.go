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

const listingColumns = `listing_id, status, seller, price, item, buyer, created_at, closed_at`

// TradeRepository implements repository.Trade for PostgreSQL
type TradeRepository struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{db: db}
}

// TradeTx implements repository.TradeTx
type TradeTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *TradeRepository) BeginTx(ctx context.Context) (repository.TradeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &TradeTx{tx: tx}, nil
}

func (t *TradeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *TradeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	var itemData []byte
	err := row.Scan(&l.ID, &l.Status, &l.Seller, &l.Price, &itemData, &l.Buyer, &l.CreatedAt, &l.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	l.Item, err = unmarshalItem(itemData)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func queryListings(ctx context.Context, db dbtx, query string, args ...any) ([]domain.Listing, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		var itemData []byte
		if err := rows.Scan(&l.ID, &l.Status, &l.Seller, &l.Price, &itemData, &l.Buyer, &l.CreatedAt, &l.ClosedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		l.Item, err = unmarshalItem(itemData)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing rows: %w", err)
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

// GetListing retrieves a listing by id, nil when absent
func (r *TradeRepository) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE listing_id = $1`, listingID))
}

// ListActiveListings returns the public feed, newest first
func (r *TradeRepository) ListActiveListings(ctx context.Context) ([]domain.Listing, error) {
	return queryListings(ctx, r.db,
		`SELECT `+listingColumns+` FROM listings WHERE status = $1 ORDER BY created_at DESC`,
		domain.ListingActive)
}

// ListListingsBySeller returns all of a seller's listings, newest first
func (r *TradeRepository) ListListingsBySeller(ctx context.Context, seller string) ([]domain.Listing, error) {
	return queryListings(ctx, r.db,
		`SELECT `+listingColumns+` FROM listings WHERE seller = $1 ORDER BY created_at DESC`,
		seller)
}

// GetListingForUpdate locks and retrieves a listing row, nil when absent
func (t *TradeTx) GetListingForUpdate(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	return scanListing(t.tx.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE listing_id = $1 FOR UPDATE`, listingID))
}

// InsertListing stores a new listing
func (t *TradeTx) InsertListing(ctx context.Context, listing domain.Listing) error {
	itemJSON, err := marshalItem(listing.Item)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO listings (listing_id, status, seller, price, item, buyer, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		listing.ID, listing.Status, listing.Seller, listing.Price, itemJSON,
		listing.Buyer, listing.CreatedAt, listing.ClosedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// UpdateListing stores the listing's mutable fields
func (t *TradeTx) UpdateListing(ctx context.Context, listing domain.Listing) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE listings SET status = $2, buyer = $3, closed_at = $4 WHERE listing_id = $1`,
		listing.ID, listing.Status, listing.Buyer, listing.ClosedAt)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}

func (t *TradeTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, t.tx, accountID, true)
}

func (t *TradeTx) UpdateAccount(ctx context.Context, account domain.Account) error {
	return updateAccount(ctx, t.tx, account)
}

func (t *TradeTx) GetInventoryForUpdate(ctx context.Context, ownerID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, ownerID, true)
}

func (t *TradeTx) UpdateInventory(ctx context.Context, ownerID string, inventory domain.Inventory) error {
	return updateInventory(ctx, t.tx, ownerID, inventory)
}

func (t *TradeTx) GetEquipmentForUpdate(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	return getEquipmentForUpdate(ctx, t.tx, ownerID)
}

func (t *TradeTx) UpdateEquipment(ctx context.Context, equipment domain.Equipment) error {
	return updateEquipment(ctx, t.tx, equipment)
}

// Ensure interface compliance
var (
	_ repository.Trade   = (*TradeRepository)(nil)
	_ repository.TradeTx = (*TradeTx)(nil)
)
