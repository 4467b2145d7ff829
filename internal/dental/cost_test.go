package dental

import (
	"errors"
	"math"
	"testing"
	"time"
)

func entriesWithCosts(costs ...float64) []ProcedureEntry {
	start := NewDate(2024, time.January, 1)
	entries := make([]ProcedureEntry, len(costs))
	for i, cost := range costs {
		entries[i] = ProcedureEntry{
			Tooth:        "11",
			Procedure:    "Cleaning",
			Cost:         cost,
			Status:       StatusPending,
			StartDate:    start,
			DurationDays: 7,
			EndDate:      start.AddDays(7),
		}
	}
	return entries
}

func TestComputeSummaryBasic(t *testing.T) {
	summary, err := ComputeSummary(entriesWithCosts(100, 250, 50), 0, false, DefaultTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 400 {
		t.Errorf("total: expected 400, got %.2f", summary.Total)
	}
	if summary.Final != 400 {
		t.Errorf("final: expected 400, got %.2f", summary.Final)
	}
}

func TestComputeSummaryDiscountClamped(t *testing.T) {
	// total=300, discountInput=400 -> discount clamped to 300, final 0.
	summary, err := ComputeSummary(entriesWithCosts(100, 200), 400, false, DefaultTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Discount != 300 {
		t.Errorf("discount: expected clamp to 300, got %.2f", summary.Discount)
	}
	if summary.Final != 0 {
		t.Errorf("final: expected 0, got %.2f", summary.Final)
	}
}

func TestComputeSummaryWithTax(t *testing.T) {
	// total=200, tax 15% = 30, discount 50 -> final 180.
	summary, err := ComputeSummary(entriesWithCosts(120, 80), 50, true, 0.15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Tax != 30 {
		t.Errorf("tax: expected 30, got %.2f", summary.Tax)
	}
	if summary.Final != 180 {
		t.Errorf("final: expected 180, got %.2f", summary.Final)
	}
}

func TestComputeSummaryNegativeDiscountRejected(t *testing.T) {
	_, err := ComputeSummary(entriesWithCosts(100), -1, false, DefaultTaxRate)
	var invalid *InvalidDiscountError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDiscountError, got %v", err)
	}
}

func TestComputeSummaryEmptyLedger(t *testing.T) {
	summary, err := ComputeSummary(nil, 10, true, DefaultTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 0 || summary.Discount != 0 || summary.Tax != 0 || summary.Final != 0 {
		t.Errorf("empty ledger summary should be all zero, got %+v", summary)
	}
}

func TestComputeSummaryInvariant(t *testing.T) {
	cases := []struct {
		costs      []float64
		discount   float64
		taxEnabled bool
	}{
		{[]float64{100}, 0, false},
		{[]float64{100, 200, 300}, 150, true},
		{[]float64{19.99, 0.01}, 5, true},
		{[]float64{50}, 1000, true},
	}

	for _, tc := range cases {
		summary, err := ComputeSummary(entriesWithCosts(tc.costs...), tc.discount, tc.taxEnabled, DefaultTaxRate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Discount < 0 || summary.Discount > summary.Total {
			t.Errorf("discount %.2f out of [0, %.2f]", summary.Discount, summary.Total)
		}
		want := summary.Total - summary.Discount + summary.Tax
		if math.Abs(summary.Final-want) > 1e-9 {
			t.Errorf("final %.6f != total-discount+tax %.6f", summary.Final, want)
		}
	}
}

func TestComputeSummaryIdempotent(t *testing.T) {
	entries := entriesWithCosts(100, 200)
	first, err := ComputeSummary(entries, 50, true, DefaultTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeSummary(entries, 50, true, DefaultTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("identical inputs must produce identical summaries: %+v != %+v", first, second)
	}
}
