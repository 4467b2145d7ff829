package dental

// PatientSession is the working copy of one patient's chart and plan for a
// single request. Callers load it from storage, mutate it through the chart
// and ledger operations, and persist the whole substructure back only after
// every validation passed. The package itself keeps no state between calls.
type PatientSession struct {
	FileID string
	Layout Layout
	Chart  Chart
	Ledger Ledger
}

// NewPatientSession builds a session with the chart reconciled against the
// canonical layout.
func NewPatientSession(fileID string, layout Layout, persisted Chart, plan []ProcedureEntry) *PatientSession {
	entries := make([]ProcedureEntry, len(plan))
	copy(entries, plan)
	return &PatientSession{
		FileID: fileID,
		Layout: layout,
		Chart:  Reconcile(layout, persisted),
		Ledger: Ledger{Entries: entries},
	}
}
