package models

import (
	"errors"
	"testing"
)

func TestDecodeChartValid(t *testing.T) {
	chart, err := DecodeChart("P-100", []byte(`{"11":"Cavity","21":"Healthy"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chart["11"] != "Cavity" {
		t.Errorf("tooth 11: expected Cavity, got %q", chart["11"])
	}
	if len(chart) != 2 {
		t.Errorf("expected 2 teeth, got %d", len(chart))
	}
}

func TestDecodeChartEmpty(t *testing.T) {
	chart, err := DecodeChart("P-100", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart) != 0 {
		t.Errorf("expected empty chart, got %d entries", len(chart))
	}
}

func TestDecodeChartMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{"11":`},
		{"wrong shape", `[1,2,3]`},
		{"empty tooth key", `{"":"Cavity"}`},
		{"empty condition", `{"11":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeChart("P-100", []byte(tc.raw))
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schemaErr.FileID != "P-100" {
				t.Errorf("file id: expected P-100, got %q", schemaErr.FileID)
			}
		})
	}
}

func TestDecodePlanValid(t *testing.T) {
	raw := []byte(`[{"tooth":"16","procedure":"Filling","cost":250,"status":"Pending","start_date":"2024-03-01","duration_days":7,"end_date":"2024-03-08"}]`)
	plan, err := DecodePlan("P-200", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(plan))
	}
	if plan[0].Tooth != "16" || plan[0].Procedure != "Filling" {
		t.Errorf("unexpected entry: %+v", plan[0])
	}
}

func TestDecodePlanMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing tooth", `[{"procedure":"Filling","status":"Pending","start_date":"2024-03-01","duration_days":7}]`},
		{"missing procedure", `[{"tooth":"16","status":"Pending","start_date":"2024-03-01","duration_days":7}]`},
		{"unknown status", `[{"tooth":"16","procedure":"Filling","status":"Paused","start_date":"2024-03-01","duration_days":7}]`},
		{"zero duration", `[{"tooth":"16","procedure":"Filling","status":"Pending","start_date":"2024-03-01","duration_days":0}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePlan("P-200", []byte(tc.raw))
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
		})
	}
}
