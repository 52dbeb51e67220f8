package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Rarity represents the canonical rarity tier of an item
type Rarity string

const (
	RarityNormal Rarity = "normal"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
	RarityLegend Rarity = "legend"
	RarityMyth   Rarity = "myth"
	RarityAether Rarity = "aether"
)

// rarityAliases maps legacy rarity names onto the canonical set
var rarityAliases = map[string]Rarity{
	"unique":   RarityEpic,
	"uncommon": RarityRare,
}

// NormalizeRarity lower-cases a raw rarity value and folds legacy aliases
// into the canonical six-tier set. Unknown values default to normal.
func NormalizeRarity(raw string) Rarity {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := rarityAliases[lowered]; ok {
		return alias
	}
	switch r := Rarity(lowered); r {
	case RarityNormal, RarityRare, RarityEpic, RarityLegend, RarityMyth, RarityAether:
		return r
	}
	return RarityNormal
}

// Item represents a tradeable item. An item exists in exactly one location
// at a time: an owner's inventory, one active listing, or one active auction.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rarity     Rarity `json:"rarity"`
	Consumable bool   `json:"consumable"`
	Uses       *int   `json:"uses,omitempty"`
}

// UnmarshalJSON normalizes the rarity field on read so legacy aliases never
// leak past the storage boundary.
func (i *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Rarity = NormalizeRarity(string(raw.Rarity))
	*i = Item(raw)
	return nil
}

// ItemRef is a normalized item identifier. Legacy records stored equipped
// references as JSON numbers; new records store strings. Both decode into
// the same string form and only the string form is ever persisted.
type ItemRef string

// UnmarshalJSON accepts both string and numeric encodings of an item id.
func (r *ItemRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ItemRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = ItemRef(n.String())
	return nil
}

// RefersTo reports whether the reference identifies the given item id,
// tolerating a legacy numeric encoding of the same id.
func (r ItemRef) RefersTo(itemID string) bool {
	if string(r) == itemID {
		return true
	}
	// Legacy ids may differ only in numeric formatting (e.g. "007" vs "7")
	rn, errR := strconv.ParseInt(string(r), 10, 64)
	in, errI := strconv.ParseInt(itemID, 10, 64)
	return errR == nil && errI == nil && rn == in
}
