package dental

import (
	"errors"
	"testing"
)

var testConditions = []string{"Healthy", "Cavity", "Root Canal", "Missing"}

func twoToothLayout() Layout {
	return Layout{Name: "test", Rows: [][]string{{"11", "12"}}}
}

func TestReconcileFillsMissingTeethWithHealthy(t *testing.T) {
	effective := Reconcile(twoToothLayout(), Chart{"11": "Cavity"})

	if len(effective) != 2 {
		t.Fatalf("expected 2 teeth, got %d", len(effective))
	}
	if effective["11"] != "Cavity" {
		t.Errorf("tooth 11: expected Cavity, got %q", effective["11"])
	}
	if effective["12"] != HealthyCondition {
		t.Errorf("tooth 12: expected Healthy, got %q", effective["12"])
	}
}

func TestReconcileDropsTeethOutsideLayout(t *testing.T) {
	effective := Reconcile(twoToothLayout(), Chart{"99": "Cavity"})

	if _, ok := effective["99"]; ok {
		t.Error("tooth 99 is not in the layout and should have been dropped")
	}
	for _, tooth := range []string{"11", "12"} {
		if effective[tooth] != HealthyCondition {
			t.Errorf("tooth %s: expected Healthy, got %q", tooth, effective[tooth])
		}
	}
}

func TestReconcileCoversFullAdultLayout(t *testing.T) {
	layout := AdultLayout()
	effective := Reconcile(layout, Chart{"36": "Root Canal"})

	if len(effective) != 32 {
		t.Fatalf("adult layout has 32 teeth, chart has %d", len(effective))
	}
	for _, tooth := range layout.TeethInOrder() {
		want := HealthyCondition
		if tooth == "36" {
			want = "Root Canal"
		}
		if effective[tooth] != want {
			t.Errorf("tooth %s: expected %q, got %q", tooth, want, effective[tooth])
		}
	}
}

func TestApplySelectionReportsChange(t *testing.T) {
	layout := twoToothLayout()
	chart := Reconcile(layout, nil)

	changed, err := chart.ApplySelection(layout, testConditions, "11", "Cavity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("first selection should report a change")
	}

	// Second identical selection is a no-op.
	changed, err = chart.ApplySelection(layout, testConditions, "11", "Cavity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("repeated selection must not report a change")
	}
}

func TestApplySelectionDefaultedToothCountsAsChange(t *testing.T) {
	layout := twoToothLayout()
	chart := Chart{} // tooth absent, implicitly Healthy

	changed, err := chart.ApplySelection(layout, testConditions, "12", HealthyCondition)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("selecting Healthy on a defaulted tooth is a no-op")
	}

	changed, err = chart.ApplySelection(layout, testConditions, "12", "Missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("selecting a new condition on a defaulted tooth is a change")
	}
}

func TestApplySelectionRejectsUnknownTooth(t *testing.T) {
	layout := twoToothLayout()
	chart := Reconcile(layout, nil)

	_, err := chart.ApplySelection(layout, testConditions, "99", "Cavity")
	var unknownTooth *UnknownToothError
	if !errors.As(err, &unknownTooth) {
		t.Fatalf("expected UnknownToothError, got %v", err)
	}
	if unknownTooth.Tooth != "99" {
		t.Errorf("error should name tooth 99, got %q", unknownTooth.Tooth)
	}
}

func TestApplySelectionRejectsUnknownCondition(t *testing.T) {
	layout := twoToothLayout()
	chart := Reconcile(layout, nil)

	_, err := chart.ApplySelection(layout, testConditions, "11", "Haunted")
	var invalid *InvalidConditionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConditionError, got %v", err)
	}
	if chart["11"] != HealthyCondition {
		t.Error("rejected selection must not mutate the chart")
	}
}

func TestAttentionTeethRowMajorOrder(t *testing.T) {
	layout := Layout{Name: "test", Rows: [][]string{{"11", "12"}, {"41", "42"}}}
	chart := Reconcile(layout, Chart{"42": "Cavity", "12": "Missing"})

	got := chart.AttentionTeeth(layout)
	want := []string{"12", "42"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAttentionTeethAllHealthy(t *testing.T) {
	layout := twoToothLayout()
	chart := Reconcile(layout, nil)

	if teeth := chart.AttentionTeeth(layout); len(teeth) != 0 {
		t.Errorf("expected no attention teeth, got %v", teeth)
	}
}

func TestLayoutFor(t *testing.T) {
	if got := LayoutFor("child"); got.Name != "child" {
		t.Errorf("expected child layout, got %s", got.Name)
	}
	if got := LayoutFor("adult"); got.Name != "adult" {
		t.Errorf("expected adult layout, got %s", got.Name)
	}
	if got := LayoutFor(""); got.Name != "adult" {
		t.Errorf("unknown patient type should default to adult, got %s", got.Name)
	}
}
