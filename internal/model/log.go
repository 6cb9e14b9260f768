package model

import "time"

// Inventory log action types.
const (
	ActionCreate    = "create"
	ActionImport    = "import"
	ActionExport    = "export"
	ActionDelete    = "delete"
	ActionDeleteAll = "delete-all"
)

// InventoryLog records one inventory mutation for reporting.
// Item fields are snapshots taken at mutation time.
type InventoryLog struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	ActionType     string    `json:"actionType"`
	ItemName       string    `json:"itemName"`
	QuantityChange int       `json:"quantityChange"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	PerformedBy    string    `json:"performedBy"`
}
