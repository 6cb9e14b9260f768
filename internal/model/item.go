package model

import (
	"strings"
	"time"
)

// Item conditions.
const (
	ConditionNew  = "new"
	ConditionUsed = "used"
)

// InventoryItem is a single stock line in the warehouse.
type InventoryItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	MinStock    int       `json:"minStock"`
	Location    string    `json:"location"`
	LastUpdated time.Time `json:"lastUpdated"`
	Condition   string    `json:"condition"`
}

// MergeKey is the natural deduplication key for inventory items.
// Two items with equal keys are the same stock line and their quantities
// are combined instead of creating a second entry.
type MergeKey struct {
	Name      string
	Condition string
}

// Key returns the item's MergeKey: trimmed, case-folded name plus
// condition, with an unset condition defaulting to ConditionNew.
func (i InventoryItem) Key() MergeKey {
	cond := i.Condition
	if cond == "" {
		cond = ConditionNew
	}
	return MergeKey{
		Name:      strings.ToLower(strings.TrimSpace(i.Name)),
		Condition: cond,
	}
}

// IsLowStock reports whether the item has fallen to or below its own
// minimum-stock threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}
