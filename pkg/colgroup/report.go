package colgroup

// Outcome records one skipped or failed item together with the reason.
type Outcome struct {
	// Key is the source key or output artifact concerned.
	Key string
	// Err is the typed error that caused the skip.
	Err error
}

// LoadReport is the per-item result of a load call. Load operations never
// fail as a whole (except on a missing directory); individual sources that
// could not be loaded appear in Skipped and the rest load normally.
type LoadReport struct {
	// Loaded lists source keys registered by this call, in load order.
	Loaded []string
	// Skipped lists sources that were rejected, with reasons.
	Skipped []Outcome
}

// Ok reports whether every source loaded.
func (r *LoadReport) Ok() bool { return len(r.Skipped) == 0 }

// merge appends another report's entries, preserving order.
func (r *LoadReport) merge(other *LoadReport) {
	r.Loaded = append(r.Loaded, other.Loaded...)
	r.Skipped = append(r.Skipped, other.Skipped...)
}

// ExportReport is the per-artifact result of an export call.
type ExportReport struct {
	// Written lists output file paths successfully written.
	Written []string
	// Failed lists artifacts that could not be written, with reasons.
	Failed []Outcome
}

// Ok reports whether every artifact was written.
func (r *ExportReport) Ok() bool { return len(r.Failed) == 0 }
