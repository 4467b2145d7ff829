package dental

// Status is the lifecycle stage of a planned procedure. Transitions are not
// restricted: the clinic corrects mistakes by moving entries backwards.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// ValidStatus reports whether s is a known procedure status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DefaultDurationDays is the schedule length assigned to new procedures.
const DefaultDurationDays = 7

// ProcedureKey identifies a procedure within a ledger. The same procedure is
// never planned twice for the same tooth.
type ProcedureKey struct {
	Tooth     string
	Procedure string
}

// ProcedureEntry is one line of a patient's treatment plan. Cost is the
// price snapshotted from doctor settings when the entry was added; it is
// not re-derived unless the procedure itself is changed.
type ProcedureEntry struct {
	Tooth        string  `json:"tooth"`
	Procedure    string  `json:"procedure"`
	Cost         float64 `json:"cost"`
	Status       Status  `json:"status"`
	StartDate    Date    `json:"start_date"`
	DurationDays int     `json:"duration_days"`
	EndDate      Date    `json:"end_date"`
}

// Key returns the entry's (tooth, procedure) identity.
func (e ProcedureEntry) Key() ProcedureKey {
	return ProcedureKey{Tooth: e.Tooth, Procedure: e.Procedure}
}

// Ledger is the ordered treatment plan for one patient.
type Ledger struct {
	Entries []ProcedureEntry `json:"entries"`
}

// Patch describes a partial update to a procedure entry. Nil fields are left
// untouched. Setting Procedure without Cost re-prices the entry from the
// doctor's current price table.
type Patch struct {
	Procedure    *string
	Cost         *float64
	Status       *Status
	StartDate    *Date
	DurationDays *int
}

// PriceLookup resolves a procedure name to its configured price.
type PriceLookup func(procedure string) (float64, bool)

// Add appends a new Pending entry. It fails without mutating the ledger when
// the (tooth, procedure) pair already exists or the duration is below one
// day.
func (l *Ledger) Add(tooth, procedure string, cost float64, start Date, durationDays int) (*ProcedureEntry, error) {
	if durationDays < 1 {
		return nil, &InvalidDurationError{Days: durationDays}
	}
	key := ProcedureKey{Tooth: tooth, Procedure: procedure}
	if l.contains(key, -1) {
		return nil, &DuplicateProcedureError{Pairs: []ProcedureKey{key}}
	}

	entry := ProcedureEntry{
		Tooth:        tooth,
		Procedure:    procedure,
		Cost:         cost,
		Status:       StatusPending,
		StartDate:    start,
		DurationDays: durationDays,
		EndDate:      start.AddDays(durationDays),
	}
	l.Entries = append(l.Entries, entry)
	return &l.Entries[len(l.Entries)-1], nil
}

// Update applies a patch to the entry at index. All validation happens
// before any field is written, so a failed update leaves the ledger
// unchanged. The end date is recomputed after any schedule change.
func (l *Ledger) Update(index int, patch Patch, prices PriceLookup) error {
	if index < 0 || index >= len(l.Entries) {
		return ErrEntryNotFound
	}
	entry := l.Entries[index]

	updated := entry
	if patch.Procedure != nil {
		updated.Procedure = *patch.Procedure
	}
	if patch.Status != nil {
		if !ValidStatus(*patch.Status) {
			return &InvalidStatusError{Status: string(*patch.Status)}
		}
		updated.Status = *patch.Status
	}
	if patch.StartDate != nil {
		updated.StartDate = *patch.StartDate
	}
	if patch.DurationDays != nil {
		if *patch.DurationDays < 1 {
			return &InvalidDurationError{Days: *patch.DurationDays}
		}
		updated.DurationDays = *patch.DurationDays
	}

	// Renaming the procedure re-prices from current settings unless the
	// patch carries an explicit cost. Unknown procedures keep the old
	// snapshot.
	switch {
	case patch.Cost != nil:
		updated.Cost = *patch.Cost
	case patch.Procedure != nil && updated.Procedure != entry.Procedure && prices != nil:
		if price, ok := prices(updated.Procedure); ok {
			updated.Cost = price
		}
	}

	if updated.Procedure != entry.Procedure && l.contains(updated.Key(), index) {
		return &DuplicateProcedureError{Pairs: []ProcedureKey{updated.Key()}}
	}

	updated.EndDate = updated.StartDate.AddDays(updated.DurationDays)
	l.Entries[index] = updated
	return nil
}

// Remove drops the entries at the given indices. Out-of-range indices are
// ignored.
func (l *Ledger) Remove(indices ...int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := l.Entries[:0]
	for i, entry := range l.Entries {
		if !drop[i] {
			kept = append(kept, entry)
		}
	}
	l.Entries = kept
}

// BulkReplace swaps the whole plan for the batch management flow. The
// replacement set is validated as a unit: any duplicate pair, bad duration
// or unknown status rejects the entire batch and the ledger keeps its
// previous entries. End dates are recomputed for every entry.
func (l *Ledger) BulkReplace(entries []ProcedureEntry) error {
	seen := make(map[ProcedureKey]bool, len(entries))
	var duplicates []ProcedureKey
	for _, entry := range entries {
		if entry.DurationDays < 1 {
			return &InvalidDurationError{Days: entry.DurationDays}
		}
		if !ValidStatus(entry.Status) {
			return &InvalidStatusError{Status: string(entry.Status)}
		}
		key := entry.Key()
		if seen[key] {
			duplicates = append(duplicates, key)
		}
		seen[key] = true
	}
	if len(duplicates) > 0 {
		return &DuplicateProcedureError{Pairs: duplicates}
	}

	replacement := make([]ProcedureEntry, len(entries))
	for i, entry := range entries {
		entry.EndDate = entry.StartDate.AddDays(entry.DurationDays)
		replacement[i] = entry
	}
	l.Entries = replacement
	return nil
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() Ledger {
	entries := make([]ProcedureEntry, len(l.Entries))
	copy(entries, l.Entries)
	return Ledger{Entries: entries}
}

func (l *Ledger) contains(key ProcedureKey, skipIndex int) bool {
	for i, entry := range l.Entries {
		if i == skipIndex {
			continue
		}
		if entry.Key() == key {
			return true
		}
	}
	return false
}
