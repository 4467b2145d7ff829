package services

import (
	"testing"
	"time"

	"dental-backend/internal/models"
	"dental-backend/internal/timeutil"
)

func TestClassifyStock(t *testing.T) {
	const (
		lowStock   = 5
		warnWithin = 30
	)

	cases := []struct {
		name      string
		quantity  int
		daysToExp int
		want      models.StockStatus
	}{
		{"expired outranks everything", 0, -1, models.StockStatusExpired},
		{"expired with stock remaining", 50, -10, models.StockStatusExpired},
		{"out of stock", 0, 100, models.StockStatusOutOfStock},
		{"low stock at threshold", 5, 100, models.StockStatusLowStock},
		{"low stock below threshold", 1, 100, models.StockStatusLowStock},
		{"expiring soon", 20, 30, models.StockStatusExpiringSoon},
		{"expiring today", 20, 0, models.StockStatusExpiringSoon},
		{"normal", 20, 31, models.StockStatusNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyStock(tc.quantity, tc.daysToExp, lowStock, warnWithin)
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestStockStatusPriority(t *testing.T) {
	ordered := []models.StockStatus{
		models.StockStatusExpired,
		models.StockStatusOutOfStock,
		models.StockStatusLowStock,
		models.StockStatusExpiringSoon,
		models.StockStatusNormal,
	}

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Priority() >= ordered[i].Priority() {
			t.Errorf("%s should sort before %s", ordered[i-1], ordered[i])
		}
	}
}

func TestBuildView(t *testing.T) {
	item := &models.StockItem{
		Name:       "gloves",
		Quantity:   100,
		ExpiryDate: timeutil.Today().AddDate(1, 0, 0),
	}

	view := BuildView(item, 5, 30)
	if view.Status != models.StockStatusNormal {
		t.Errorf("expected Normal for a well stocked item a year from expiry, got %s", view.Status)
	}
	if view.DaysUntilExpiry < 300 {
		t.Errorf("days until expiry: expected roughly a year, got %d", view.DaysUntilExpiry)
	}

	expired := &models.StockItem{
		Name:       "anesthetic",
		Quantity:   10,
		ExpiryDate: timeutil.Today().Add(-48 * time.Hour),
	}
	view = BuildView(expired, 5, 30)
	if view.Status != models.StockStatusExpired {
		t.Errorf("expected Expired, got %s", view.Status)
	}
}
