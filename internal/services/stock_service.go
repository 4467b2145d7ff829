package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"dental-backend/internal/cache"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/timeutil"
)

type StockService struct {
	stockRepo       *repositories.StockRepository
	settingsService *SettingsService
}

func NewStockService(stockRepo *repositories.StockRepository, settingsService *SettingsService) *StockService {
	return &StockService{
		stockRepo:       stockRepo,
		settingsService: settingsService,
	}
}

// ClassifyStock derives the alert status for one item. Expiry outranks
// quantity: an expired item reads Expired even at zero stock.
func ClassifyStock(quantity, daysUntilExpiry, lowStockThreshold, expiryWarningDays int) models.StockStatus {
	switch {
	case daysUntilExpiry < 0:
		return models.StockStatusExpired
	case quantity == 0:
		return models.StockStatusOutOfStock
	case quantity <= lowStockThreshold:
		return models.StockStatusLowStock
	case daysUntilExpiry <= expiryWarningDays:
		return models.StockStatusExpiringSoon
	default:
		return models.StockStatusNormal
	}
}

// BuildView attaches the derived alert fields to a stock item.
func BuildView(item *models.StockItem, lowStockThreshold, expiryWarningDays int) models.StockItemView {
	days := timeutil.DaysUntil(item.ExpiryDate)
	return models.StockItemView{
		StockItem:       *item,
		DaysUntilExpiry: days,
		Status:          ClassifyStock(item.Quantity, days, lowStockThreshold, expiryWarningDays),
	}
}

// Add creates a new inventory item. Names are lowercased so "Gloves" and
// "gloves" are the same item.
func (s *StockService) Add(ctx context.Context, doctorID int, req *models.AddStockRequest) (*models.StockItemView, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, errors.New("item name is required")
	}
	if req.Quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}

	expiry, err := timeutil.ParseInClinic(timeutil.DateLayout, req.ExpiryDate)
	if err != nil {
		return nil, errors.New("expiry date must be in YYYY-MM-DD format")
	}

	item := &models.StockItem{
		DoctorID:   doctorID,
		Name:       name,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
	}
	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	cache.InvalidateStock(ctx, doctorID)

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	view := BuildView(item, settings.LowStockThreshold, settings.ExpiryWarningDays)
	log.Printf("[Stock] Added %q (qty %d) for doctor %d", name, req.Quantity, doctorID)
	return &view, nil
}

// List returns the inventory with derived statuses, critical items first.
func (s *StockService) List(ctx context.Context, doctorID int) ([]models.StockItemView, error) {
	items, err := s.stockRepo.List(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	views := make([]models.StockItemView, 0, len(items))
	for _, item := range items {
		views = append(views, BuildView(item, settings.LowStockThreshold, settings.ExpiryWarningDays))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Status.Priority() < views[j].Status.Priority()
	})
	return views, nil
}

// Update replaces quantity and expiry for one item.
func (s *StockService) Update(ctx context.Context, doctorID int, name string, req *models.UpdateStockRequest) error {
	if req.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	expiry, err := timeutil.ParseInClinic(timeutil.DateLayout, req.ExpiryDate)
	if err != nil {
		return errors.New("expiry date must be in YYYY-MM-DD format")
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if err := s.stockRepo.Update(ctx, doctorID, name, req.Quantity, expiry); err != nil {
		return err
	}
	cache.InvalidateStock(ctx, doctorID)
	return nil
}

// Consume decrements an item's quantity after use, clamping at zero.
func (s *StockService) Consume(ctx context.Context, doctorID int, name string, quantity int) error {
	if quantity <= 0 {
		return errors.New("consume quantity must be positive")
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if err := s.stockRepo.Consume(ctx, doctorID, name, quantity); err != nil {
		return err
	}
	cache.InvalidateStock(ctx, doctorID)
	return nil
}

// Remove deletes one inventory item.
func (s *StockService) Remove(ctx context.Context, doctorID int, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := s.stockRepo.Delete(ctx, doctorID, name); err != nil {
		return err
	}
	cache.InvalidateStock(ctx, doctorID)
	return nil
}

// Summary returns the aggregate figures for the reports tab.
func (s *StockService) Summary(ctx context.Context, doctorID int) (*models.StockSummary, error) {
	views, err := s.List(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	summary := &models.StockSummary{TotalItems: len(views)}
	for _, view := range views {
		summary.TotalUnits += view.Quantity
		if view.Status == models.StockStatusExpiringSoon || view.Status == models.StockStatusExpired {
			summary.ExpiringSoon++
		}
	}
	return summary, nil
}

// Alerts returns only the items in an alert state.
func (s *StockService) Alerts(ctx context.Context, doctorID int) ([]models.StockItemView, error) {
	views, err := s.List(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var alerts []models.StockItemView
	for _, view := range views {
		if view.Status != models.StockStatusNormal {
			alerts = append(alerts, view)
		}
	}
	return alerts, nil
}

// ExpiryHorizon reports items expiring within the given window, soonest
// first. Used by the alert mailer.
func (s *StockService) ExpiryHorizon(ctx context.Context, doctorID, withinDays int) ([]models.StockItemView, error) {
	views, err := s.List(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var expiring []models.StockItemView
	for _, view := range views {
		if view.DaysUntilExpiry <= withinDays {
			expiring = append(expiring, view)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysUntilExpiry < expiring[j].DaysUntilExpiry
	})
	return expiring, nil
}
