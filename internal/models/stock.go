package models

import "time"

// StockStatus classifies an inventory item for display and alerting.
type StockStatus string

const (
	StockStatusExpired      StockStatus = "Expired"
	StockStatusOutOfStock   StockStatus = "Out of Stock"
	StockStatusLowStock     StockStatus = "Low Stock"
	StockStatusExpiringSoon StockStatus = "Expiring Soon"
	StockStatusNormal       StockStatus = "Normal"
)

// Priority orders statuses so critical items sort first.
func (s StockStatus) Priority() int {
	switch s {
	case StockStatusExpired:
		return 0
	case StockStatusOutOfStock:
		return 1
	case StockStatusLowStock:
		return 2
	case StockStatusExpiringSoon:
		return 3
	default:
		return 4
	}
}

// StockItem is one inventory line owned by a doctor. Names are stored
// lowercase and are unique per doctor.
type StockItem struct {
	ID         int       `json:"id"`
	DoctorID   int       `json:"doctor_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StockItemView is a stock item with its derived alert fields.
type StockItemView struct {
	StockItem
	DaysUntilExpiry int         `json:"days_until_expiry"`
	Status          StockStatus `json:"status"`
}

// AddStockRequest creates or rejects-if-present an inventory item
type AddStockRequest struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"` // 2006-01-02
}

// UpdateStockRequest replaces quantity and expiry for an item
type UpdateStockRequest struct {
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
}

// ConsumeStockRequest decrements quantity for an item
type ConsumeStockRequest struct {
	Quantity int `json:"quantity"`
}

// StockSummary are the aggregate figures shown on the reports tab
type StockSummary struct {
	TotalItems   int `json:"total_items"`
	TotalUnits   int `json:"total_units"`
	ExpiringSoon int `json:"expiring_soon"`
}
