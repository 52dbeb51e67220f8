// Package inventory implements item extraction: removing an item from an
// owner's inventory and stripping it from every equipped-item reference the
// owner controls. Extraction runs on records the caller has read inside its
// enclosing transaction, and the extracted item must be written into a new
// listing or auction within that same transaction so it can never vanish.
package inventory

import (
	"fmt"

	"github.com/emberhall/bazaar/internal/domain"
)

// ExtractItem removes the item with the given id from the inventory and
// strips matching references from every equipment record, tolerating legacy
// numeric id encodings. It returns the extracted item snapshot.
func ExtractItem(inv *domain.Inventory, equipment []domain.Equipment, itemID string) (*domain.Item, error) {
	idx := -1
	for i, item := range inv.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	extracted := inv.Items[idx]
	inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)

	for i := range equipment {
		equipment[i].Equipped = stripRef(equipment[i].Equipped, itemID)
	}

	return &extracted, nil
}

// ReturnItem puts an item back into an inventory, used when a listing is
// cancelled or an auction expires with no bids. Equipped references are not
// restored; a returned item comes back unequipped.
func ReturnItem(inv *domain.Inventory, item domain.Item) {
	inv.Items = append(inv.Items, item)
}

// stripRef removes every reference that identifies itemID, including legacy
// numeric encodings of the same id.
func stripRef(refs []domain.ItemRef, itemID string) []domain.ItemRef {
	kept := refs[:0]
	for _, ref := range refs {
		if !ref.RefersTo(itemID) {
			kept = append(kept, ref)
		}
	}
	return kept
}
