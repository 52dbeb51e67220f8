// Package pricing maps item rarity and consumability to canonical base
// prices and derives the allowed fixed-price listing window.
package pricing

import (
	"github.com/emberhall/bazaar/internal/domain"
)

// basePrices is the canonical consumable x rarity price table. Items whose
// rarity is missing from the table price at 0 and are rejected as
// unsellable by callers that require a positive price.
var basePrices = map[bool]map[domain.Rarity]int64{
	false: {
		domain.RarityNormal: 5,
		domain.RarityRare:   10,
		domain.RarityEpic:   25,
		domain.RarityLegend: 60,
		domain.RarityMyth:   150,
		domain.RarityAether: 400,
	},
	true: {
		domain.RarityNormal: 2,
		domain.RarityRare:   6,
		domain.RarityEpic:   15,
		domain.RarityLegend: 40,
		domain.RarityMyth:   100,
		domain.RarityAether: 250,
	},
}

// BasePrice returns the canonical base price for an item, or 0 when the
// item has no table entry.
func BasePrice(item domain.Item) int64 {
	return basePrices[item.Consumable][item.Rarity]
}

// Bounds returns the inclusive listing price window for a base price:
// [floor(0.5*base), floor(1.5*base)].
func Bounds(base int64) (min, max int64) {
	min = base * domain.PriceWindowLowerNum / domain.PriceWindowDenom
	max = base * domain.PriceWindowUpperNum / domain.PriceWindowDenom
	return min, max
}

// InWindow reports whether price falls inside the allowed window for base
func InWindow(price, base int64) bool {
	min, max := Bounds(base)
	return price >= min && price <= max
}
