package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus represents the lifecycle state of an auction
type AuctionStatus string

const (
	AuctionActive  AuctionStatus = "active"
	AuctionSold    AuctionStatus = "sold"
	AuctionExpired AuctionStatus = "expired"
)

// AuctionKind distinguishes normal auctions from special ones whose item
// identity is hidden from everyone except the seller.
type AuctionKind string

const (
	AuctionNormal  AuctionKind = "normal"
	AuctionSpecial AuctionKind = "special"
)

// TopBid is the currently-winning bid. It is authoritative for settlement
// and never decreases.
type TopBid struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

// Auction is a timed competitive sale built on hold/release/capture escrow.
type Auction struct {
	ID        uuid.UUID     `json:"auction_id"`
	Status    AuctionStatus `json:"status"`
	Kind      AuctionKind   `json:"kind"`
	Seller    string        `json:"seller"`
	Item      Item          `json:"item"`
	MinBid    int64         `json:"min_bid"`
	TopBid    *TopBid       `json:"top_bid,omitempty"`
	EndsAt    time.Time     `json:"ends_at"`
	CreatedAt time.Time     `json:"created_at"`
	ClosedAt  *time.Time    `json:"closed_at,omitempty"`
}

// BidRecord is an immutable audit entry for one accepted bid
type BidRecord struct {
	ID        uuid.UUID `json:"bid_id"`
	AuctionID uuid.UUID `json:"auction_id"`
	Bidder    string    `json:"bidder"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"at"`
}

// AuctionSummary is the public projection of an auction. For special
// auctions viewed by non-sellers the item fields are withheld.
type AuctionSummary struct {
	ID         uuid.UUID     `json:"auction_id"`
	Kind       AuctionKind   `json:"kind"`
	Status     AuctionStatus `json:"status"`
	ItemName   string        `json:"item_name,omitempty"`
	ItemRarity Rarity        `json:"item_rarity,omitempty"`
	MinBid     int64         `json:"min_bid"`
	TopAmount  *int64        `json:"top_amount,omitempty"`
	EndsAt     time.Time     `json:"ends_at"`
}

// SummaryFor projects the auction for the given viewer, withholding item
// identity on special auctions unless the viewer is the seller.
func (a Auction) SummaryFor(viewer string) AuctionSummary {
	s := AuctionSummary{
		ID:     a.ID,
		Kind:   a.Kind,
		Status: a.Status,
		MinBid: a.MinBid,
		EndsAt: a.EndsAt,
	}
	if a.TopBid != nil {
		amount := a.TopBid.Amount
		s.TopAmount = &amount
	}
	if a.Kind != AuctionSpecial || viewer == a.Seller {
		s.ItemName = a.Item.Name
		s.ItemRarity = a.Item.Rarity
	}
	return s
}

// RedactFor returns a copy of the auction safe to show the given viewer.
// Special auctions have their item identity blanked for non-sellers.
func (a Auction) RedactFor(viewer string) Auction {
	if a.Kind != AuctionSpecial || viewer == a.Seller {
		return a
	}
	a.Item = Item{ID: "", Name: "", Rarity: "", Consumable: false}
	return a
}
