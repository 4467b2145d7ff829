package dental

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func testPrices(procedure string) (float64, bool) {
	prices := map[string]float64{
		"Cleaning": 100,
		"Filling":  250,
		"Crown":    900,
	}
	price, ok := prices[procedure]
	return price, ok
}

func TestAddProcedure(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)

	entry, err := ledger.Add("11", "Cleaning", 100, start, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(ledger.Entries))
	}
	if entry.Status != StatusPending {
		t.Errorf("new entries start Pending, got %q", entry.Status)
	}
	if want := NewDate(2024, time.January, 8); !entry.EndDate.Equal(want) {
		t.Errorf("end date: expected %s, got %s", want, entry.EndDate)
	}
}

func TestAddDuplicateRejectedWithoutMutation(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := ledger.Clone()

	_, err := ledger.Add("11", "Cleaning", 100, start, 7)
	var dup *DuplicateProcedureError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateProcedureError, got %v", err)
	}
	if dup.Pairs[0] != (ProcedureKey{Tooth: "11", Procedure: "Cleaning"}) {
		t.Errorf("error should name the colliding pair, got %+v", dup.Pairs)
	}
	if !reflect.DeepEqual(before.Entries, ledger.Entries) {
		t.Error("rejected add must leave the ledger unchanged")
	}
}

func TestAddSameProcedureDifferentTooth(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ledger.Add("12", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("same procedure on another tooth is allowed: %v", err)
	}
	if len(ledger.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ledger.Entries))
	}
}

func TestAddInvalidDuration(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)

	_, err := ledger.Add("11", "Cleaning", 100, start, 0)
	var invalid *InvalidDurationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDurationError, got %v", err)
	}
	if len(ledger.Entries) != 0 {
		t.Error("rejected add must not append an entry")
	}
}

func TestUpdateRecomputesEndDate(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.March, 1)
	if _, err := ledger.Add("21", "Filling", 250, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	duration := 14
	if err := ledger.Update(0, Patch{DurationDays: &duration}, testPrices); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := NewDate(2024, time.March, 15); !ledger.Entries[0].EndDate.Equal(want) {
		t.Errorf("end date: expected %s, got %s", want, ledger.Entries[0].EndDate)
	}

	newStart := NewDate(2024, time.April, 1)
	if err := ledger.Update(0, Patch{StartDate: &newStart}, testPrices); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := NewDate(2024, time.April, 15); !ledger.Entries[0].EndDate.Equal(want) {
		t.Errorf("end date after start change: expected %s, got %s", want, ledger.Entries[0].EndDate)
	}
}

func TestUpdateProcedureRepricesFromSettings(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	crown := "Crown"
	if err := ledger.Update(0, Patch{Procedure: &crown}, testPrices); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.Entries[0].Cost != 900 {
		t.Errorf("renamed procedure should be re-priced to 900, got %.2f", ledger.Entries[0].Cost)
	}
}

func TestUpdateExplicitCostOverridesReprice(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	crown := "Crown"
	cost := 750.0
	if err := ledger.Update(0, Patch{Procedure: &crown, Cost: &cost}, testPrices); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.Entries[0].Cost != 750 {
		t.Errorf("explicit cost wins over re-price, got %.2f", ledger.Entries[0].Cost)
	}
}

func TestUpdateUnknownProcedureKeepsSnapshotPrice(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exotic := "Gold Inlay"
	if err := ledger.Update(0, Patch{Procedure: &exotic}, testPrices); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.Entries[0].Cost != 100 {
		t.Errorf("unknown procedure keeps the old snapshot, got %.2f", ledger.Entries[0].Cost)
	}
}

func TestUpdateRenameIntoCollisionRejected(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ledger.Add("11", "Filling", 250, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := ledger.Clone()

	cleaning := "Cleaning"
	err := ledger.Update(1, Patch{Procedure: &cleaning}, testPrices)
	var dup *DuplicateProcedureError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateProcedureError, got %v", err)
	}
	if !reflect.DeepEqual(before.Entries, ledger.Entries) {
		t.Error("rejected update must leave the ledger unchanged")
	}
}

func TestUpdateStatusFreeTransitions(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Completed -> Pending is allowed; the clinic uses it to undo mistakes.
	for _, status := range []Status{StatusCompleted, StatusPending, StatusInProgress} {
		s := status
		if err := ledger.Update(0, Patch{Status: &s}, testPrices); err != nil {
			t.Fatalf("status %q: unexpected error: %v", status, err)
		}
		if ledger.Entries[0].Status != status {
			t.Errorf("expected status %q, got %q", status, ledger.Entries[0].Status)
		}
	}

	bogus := Status("Cancelled")
	err := ledger.Update(0, Patch{Status: &bogus}, testPrices)
	var invalid *InvalidStatusError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
}

func TestUpdateMissingEntry(t *testing.T) {
	var ledger Ledger
	if err := ledger.Update(3, Patch{}, testPrices); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRemoveEntries(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	for _, tooth := range []string{"11", "12", "13"} {
		if _, err := ledger.Add(tooth, "Cleaning", 100, start, 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Missing refs are ignored.
	ledger.Remove(1, 99)
	if len(ledger.Entries) != 2 {
		t.Fatalf("expected 2 entries after removal, got %d", len(ledger.Entries))
	}
	if ledger.Entries[0].Tooth != "11" || ledger.Entries[1].Tooth != "13" {
		t.Errorf("removal must preserve order, got %s then %s", ledger.Entries[0].Tooth, ledger.Entries[1].Tooth)
	}
}

func TestBulkReplaceValidatesAsUnit(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := ledger.Clone()

	batch := []ProcedureEntry{
		{Tooth: "21", Procedure: "Filling", Cost: 250, Status: StatusPending, StartDate: start, DurationDays: 7},
		{Tooth: "21", Procedure: "Filling", Cost: 250, Status: StatusPending, StartDate: start, DurationDays: 7},
	}
	err := ledger.BulkReplace(batch)
	var dup *DuplicateProcedureError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateProcedureError, got %v", err)
	}
	if !reflect.DeepEqual(before.Entries, ledger.Entries) {
		t.Error("rejected batch must not partially apply")
	}
}

func TestBulkReplaceRecomputesEndDates(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.June, 1)

	batch := []ProcedureEntry{
		{Tooth: "11", Procedure: "Cleaning", Cost: 100, Status: StatusInProgress, StartDate: start, DurationDays: 3},
		{Tooth: "12", Procedure: "Crown", Cost: 900, Status: StatusPending, StartDate: start, DurationDays: 10},
	}
	if err := ledger.BulkReplace(batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := NewDate(2024, time.June, 4); !ledger.Entries[0].EndDate.Equal(want) {
		t.Errorf("entry 0 end date: expected %s, got %s", want, ledger.Entries[0].EndDate)
	}
	if want := NewDate(2024, time.June, 11); !ledger.Entries[1].EndDate.Equal(want) {
		t.Errorf("entry 1 end date: expected %s, got %s", want, ledger.Entries[1].EndDate)
	}
}

func TestLedgerJSONRoundTrip(t *testing.T) {
	var ledger Ledger
	start := NewDate(2024, time.January, 1)
	if _, err := ledger.Add("11", "Cleaning", 100, start, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ledger.Add("36", "Crown", 900, NewDate(2024, time.February, 10), 21); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(ledger.Entries)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored []ProcedureEntry
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(restored) != len(ledger.Entries) {
		t.Fatalf("round trip changed length: %d != %d", len(restored), len(ledger.Entries))
	}
	for i := range restored {
		if restored[i].Tooth != ledger.Entries[i].Tooth ||
			restored[i].Procedure != ledger.Entries[i].Procedure ||
			restored[i].Cost != ledger.Entries[i].Cost ||
			restored[i].Status != ledger.Entries[i].Status ||
			!restored[i].StartDate.Equal(ledger.Entries[i].StartDate) ||
			restored[i].DurationDays != ledger.Entries[i].DurationDays ||
			!restored[i].EndDate.Equal(ledger.Entries[i].EndDate) {
			t.Errorf("entry %d changed across round trip: %+v != %+v", i, restored[i], ledger.Entries[i])
		}
	}
}
