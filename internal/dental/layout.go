package dental

// Layout is the canonical tooth layout for a chart, using FDI two-digit
// notation (ISO 3950): first digit is the quadrant, second the position
// counted from the midline. Rows are the chart's display grouping.
type Layout struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// AdultLayout returns the permanent dentition layout (quadrants 1-4).
func AdultLayout() Layout {
	return Layout{
		Name: "adult",
		Rows: [][]string{
			{"18", "17", "16", "15", "14", "13", "12", "11", "21", "22", "23", "24", "25", "26", "27", "28"},
			{"48", "47", "46", "45", "44", "43", "42", "41", "31", "32", "33", "34", "35", "36", "37", "38"},
		},
	}
}

// ChildLayout returns the primary dentition layout (quadrants 5-8).
func ChildLayout() Layout {
	return Layout{
		Name: "child",
		Rows: [][]string{
			{"55", "54", "53", "52", "51", "61", "62", "63", "64", "65"},
			{"85", "84", "83", "82", "81", "71", "72", "73", "74", "75"},
		},
	}
}

// LayoutFor picks the layout for a patient type, defaulting to adult.
func LayoutFor(patientType string) Layout {
	if patientType == "child" {
		return ChildLayout()
	}
	return AdultLayout()
}

// Contains reports whether toothID is part of the layout.
func (l Layout) Contains(toothID string) bool {
	for _, row := range l.Rows {
		for _, id := range row {
			if id == toothID {
				return true
			}
		}
	}
	return false
}

// TeethInOrder returns every tooth identifier in canonical row-major order.
func (l Layout) TeethInOrder() []string {
	var teeth []string
	for _, row := range l.Rows {
		teeth = append(teeth, row...)
	}
	return teeth
}
