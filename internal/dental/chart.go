package dental

// HealthyCondition is the default condition for any tooth without a
// recorded one.
const HealthyCondition = "Healthy"

// Chart maps FDI tooth identifiers to health condition labels.
type Chart map[string]string

// Reconcile merges a persisted chart with the canonical layout: every tooth
// in the layout gets the persisted condition if present, otherwise Healthy.
// Persisted teeth outside the layout are dropped.
func Reconcile(layout Layout, persisted Chart) Chart {
	effective := make(Chart)
	for _, tooth := range layout.TeethInOrder() {
		if condition, ok := persisted[tooth]; ok && condition != "" {
			effective[tooth] = condition
		} else {
			effective[tooth] = HealthyCondition
		}
	}
	return effective
}

// ApplySelection records a condition for a tooth. It returns true only when
// the stored condition actually changed, so callers can skip redundant
// writes. The condition must be in the doctor's configured set and the tooth
// must exist in the layout.
func (c Chart) ApplySelection(layout Layout, conditions []string, toothID, condition string) (bool, error) {
	if !layout.Contains(toothID) {
		return false, &UnknownToothError{Tooth: toothID}
	}
	if !containsCondition(conditions, condition) {
		return false, &InvalidConditionError{Condition: condition}
	}

	current, ok := c[toothID]
	if !ok {
		current = HealthyCondition
	}
	if current == condition {
		return false, nil
	}
	c[toothID] = condition
	return true, nil
}

// AttentionTeeth returns the teeth whose condition is not Healthy, in
// canonical row-major order. The UI pre-selects the first one for treatment
// planning.
func (c Chart) AttentionTeeth(layout Layout) []string {
	var teeth []string
	for _, tooth := range layout.TeethInOrder() {
		if condition, ok := c[tooth]; ok && condition != HealthyCondition {
			teeth = append(teeth, tooth)
		}
	}
	return teeth
}

// Clone returns an independent copy of the chart.
func (c Chart) Clone() Chart {
	out := make(Chart, len(c))
	for tooth, condition := range c {
		out[tooth] = condition
	}
	return out
}

func containsCondition(conditions []string, condition string) bool {
	for _, known := range conditions {
		if known == condition {
			return true
		}
	}
	return false
}
