package models

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(7)

	if s.DoctorID != 7 {
		t.Errorf("doctor id: expected 7, got %d", s.DoctorID)
	}
	if !s.HasProcedure("Cleaning") {
		t.Error("expected Cleaning in the default catalogue")
	}
	if s.Currency != "SAR" {
		t.Errorf("currency: expected SAR, got %q", s.Currency)
	}
	if s.LowStockThreshold != 5 || s.ExpiryWarningDays != 30 {
		t.Errorf("alert thresholds: got %d / %d", s.LowStockThreshold, s.ExpiryWarningDays)
	}

	found := false
	for _, c := range s.HealthConditions {
		if c == "Healthy" {
			found = true
		}
	}
	if !found {
		t.Error("expected Healthy in the default condition set")
	}
}

func TestPriceFor(t *testing.T) {
	s := DefaultSettings(1)

	price, ok := s.PriceFor("Cleaning")
	if !ok || price != 100 {
		t.Errorf("Cleaning: expected 100, got %.2f (ok=%v)", price, ok)
	}

	if _, ok := s.PriceFor("Veneers"); ok {
		t.Error("expected no price for an uncatalogued procedure")
	}
}

func TestCurrencySymbol(t *testing.T) {
	cases := []struct {
		currency string
		want     string
	}{
		{"SAR", "SAR"},
		{"INR", "₹"},
		{"USD", "USD"},
	}

	for _, tc := range cases {
		s := &DoctorSettings{Currency: tc.currency}
		if got := s.CurrencySymbol(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.currency, tc.want, got)
		}
	}
}
