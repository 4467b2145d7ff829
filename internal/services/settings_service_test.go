package services

import (
	"reflect"
	"testing"
)

func TestDedupeNames(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"duplicates removed", []string{"Cleaning", "Filling", "Cleaning"}, []string{"Cleaning", "Filling"}},
		{"blank and whitespace dropped", []string{" Cleaning ", "", "  "}, []string{"Cleaning"}},
		{"order preserved", []string{"Crown", "Bridge", "Crown", "Implant"}, []string{"Crown", "Bridge", "Implant"}},
		{"empty input", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dedupeNames(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestContainsName(t *testing.T) {
	names := []string{"Healthy", "Cavity"}

	if !containsName(names, "Healthy") {
		t.Error("expected Healthy to be found")
	}
	if containsName(names, "healthy") {
		t.Error("lookup is case sensitive")
	}
	if containsName(nil, "Healthy") {
		t.Error("expected nothing in an empty list")
	}
}
