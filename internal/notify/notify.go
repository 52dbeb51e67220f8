// Package notify publishes marketplace events over NATS. Publishing is
// best-effort and happens after the owning transaction commits; a failed
// publish is logged and dropped, never retried against the ledger.
package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/emberhall/bazaar/internal/logger"
)

const (
	SubjectListingSold    = "market.listing.sold"
	SubjectAuctionOutbid  = "market.auction.outbid"
	SubjectAuctionSettled = "market.auction.settled"
)

// Publisher sends marketplace events to NATS subjects
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher creates a publisher on an established NATS connection
func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

type listingSoldEvent struct {
	Seller    string    `json:"seller"`
	ListingID uuid.UUID `json:"listing_id"`
	ItemName  string    `json:"item_name"`
	Price     int64     `json:"price"`
}

type outbidEvent struct {
	Bidder    string    `json:"bidder"`
	AuctionID uuid.UUID `json:"auction_id"`
	NewAmount int64     `json:"new_amount"`
}

type auctionSettledEvent struct {
	Seller    string    `json:"seller"`
	Winner    string    `json:"winner,omitempty"`
	AuctionID uuid.UUID `json:"auction_id"`
	Amount    int64     `json:"amount"`
}

// ListingSold notifies the seller that a fixed-price listing was bought
func (p *Publisher) ListingSold(ctx context.Context, seller string, listingID uuid.UUID, itemName string, price int64) {
	p.publish(ctx, SubjectListingSold, listingSoldEvent{
		Seller:    seller,
		ListingID: listingID,
		ItemName:  itemName,
		Price:     price,
	})
}

// Outbid notifies a bidder that their top bid was superseded
func (p *Publisher) Outbid(ctx context.Context, bidder string, auctionID uuid.UUID, newAmount int64) {
	p.publish(ctx, SubjectAuctionOutbid, outbidEvent{
		Bidder:    bidder,
		AuctionID: auctionID,
		NewAmount: newAmount,
	})
}

// AuctionSettled announces the outcome of a settled auction. Winner is
// empty when the auction expired without bids.
func (p *Publisher) AuctionSettled(ctx context.Context, seller, winner string, auctionID uuid.UUID, amount int64) {
	p.publish(ctx, SubjectAuctionSettled, auctionSettledEvent{
		Seller:    seller,
		Winner:    winner,
		AuctionID: auctionID,
		Amount:    amount,
	})
}

func (p *Publisher) publish(ctx context.Context, subject string, event any) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("Failed to marshal event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		log.Warn("Failed to publish event", "subject", subject, "error", err)
		return
	}
	log.Debug("Event published", "subject", subject)
}
