// Package catalog holds the immutable, ordered list of items a game
// auctions off. The auction order is exactly construction order.
package catalog

import (
	"fmt"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

type Catalog struct {
	items []auctiontypes.Item
}

// New validates and freezes a catalog. Non-required items are normalized to
// quality zero: junk carries no ranking weight.
func New(items []auctiontypes.Item, requiredSetSize int) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", auctiontypes.ErrInvalidCatalog)
	}

	frozen := make([]auctiontypes.Item, len(items))
	copy(frozen, items)

	seen := map[string]bool{}
	requiredCount := 0
	for i, item := range frozen {
		if item.Name == "" {
			return nil, fmt.Errorf("%w: item %d has no name", auctiontypes.ErrInvalidCatalog, i)
		}
		if seen[item.Name] {
			return nil, fmt.Errorf("%w: duplicate item name %q", auctiontypes.ErrInvalidCatalog, item.Name)
		}
		seen[item.Name] = true

		if item.Quality < 0 || item.Quality > auctiontypes.MaxQuality {
			return nil, fmt.Errorf("%w: item %q quality %d outside [0, %d]",
				auctiontypes.ErrInvalidCatalog, item.Name, item.Quality, auctiontypes.MaxQuality)
		}
		if !item.IsRequired {
			frozen[i].Quality = 0
		} else {
			requiredCount++
		}
	}

	if requiredCount < requiredSetSize {
		return nil, fmt.Errorf("%w: %d required items, completion set needs %d",
			auctiontypes.ErrInvalidCatalog, requiredCount, requiredSetSize)
	}

	return &Catalog{items: frozen}, nil
}

func (c *Catalog) ItemsInAuctionOrder() []auctiontypes.Item {
	items := make([]auctiontypes.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) RequiredCount() int {
	count := 0
	for _, item := range c.items {
		if item.IsRequired {
			count++
		}
	}
	return count
}
