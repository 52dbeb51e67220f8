package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the lifecycle state of a fixed-price listing
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingSold      ListingStatus = "sold"
	ListingCancelled ListingStatus = "cancelled"
)

// Listing is a fixed-price sale. The item is embedded as a snapshot taken
// when it was extracted from the seller's inventory; while the listing is
// active the listing is the item's only location.
type Listing struct {
	ID        uuid.UUID     `json:"listing_id"`
	Status    ListingStatus `json:"status"`
	Seller    string        `json:"seller"`
	Price     int64         `json:"price"`
	Item      Item          `json:"item"`
	Buyer     *string       `json:"buyer,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	ClosedAt  *time.Time    `json:"closed_at,omitempty"`
}

// ListingSummary is the public projection of a listing for feed endpoints
type ListingSummary struct {
	ID         uuid.UUID     `json:"listing_id"`
	Price      int64         `json:"price"`
	ItemName   string        `json:"item_name"`
	ItemRarity Rarity        `json:"item_rarity"`
	Status     ListingStatus `json:"status"`
}

// Summary projects the listing into its public feed row
func (l Listing) Summary() ListingSummary {
	return ListingSummary{
		ID:         l.ID,
		Price:      l.Price,
		ItemName:   l.Item.Name,
		ItemRarity: l.Item.Rarity,
		Status:     l.Status,
	}
}
