package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

// Scenario files come in two shapes: a bare array of items, or an object
// with an "items" key. Key casing varies between exporters (name/Name,
// is_required/IsRequired); both are accepted.
type rawItem struct {
	Name        string `json:"name"`
	Quality     int    `json:"quality"`
	IsRequired  *bool  `json:"is_required"`
	AltRequired *bool  `json:"IsRequired"`
}

func (r rawItem) toItem() auctiontypes.Item {
	required := false
	if r.IsRequired != nil {
		required = *r.IsRequired
	} else if r.AltRequired != nil {
		required = *r.AltRequired
	}
	return auctiontypes.Item{
		Name:       r.Name,
		Quality:    r.Quality,
		IsRequired: required,
	}
}

// LoadFile reads a scenario file and constructs a validated catalog.
func LoadFile(path string, requiredSetSize int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data, requiredSetSize)
}

func Parse(data []byte, requiredSetSize int) (*Catalog, error) {
	var raws []rawItem
	if err := json.Unmarshal(data, &raws); err != nil {
		var wrapper struct {
			Items []rawItem `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Items == nil {
			return nil, fmt.Errorf("%w: scenario must be an item array or an object with an \"items\" key",
				auctiontypes.ErrInvalidCatalog)
		}
		raws = wrapper.Items
	}

	items := make([]auctiontypes.Item, 0, len(raws))
	for _, raw := range raws {
		items = append(items, raw.toItem())
	}
	return New(items, requiredSetSize)
}
