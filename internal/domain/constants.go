package domain

import "time"

// Trade constants
const (
	// MaxDailyListings is the per-seller cap on fixed-price listings per day
	MaxDailyListings = 10

	// PriceWindowLowerNum / PriceWindowUpperNum express the allowed listing
	// price window as multiples of the base price: [floor(0.5B), floor(1.5B)]
	PriceWindowLowerNum = 1
	PriceWindowUpperNum = 3
	PriceWindowDenom    = 2
)

// Auction constants
const (
	// MinAuctionDuration is the floor applied to requested auction durations
	MinAuctionDuration = 30 * time.Minute

	// MinBidIncrement is the amount by which a new bid must exceed the
	// current top bid
	MinBidIncrement = 1
)
