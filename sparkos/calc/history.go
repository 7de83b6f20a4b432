package calc

// HistoryLimit is the maximum number of records kept.
const HistoryLimit = 10

// Record is one successful calculation.
type Record struct {
	Expr   string
	Result float64
}

// String renders the record as "<expression> = <result>".
func (r Record) String() string {
	return r.Expr + " = " + FormatNumber(r.Result)
}

// History holds records newest first, capped at HistoryLimit.
//
// Records are only added and evicted; they are never edited.
type History struct {
	recs []Record
}

// Push prepends r and reports whether the oldest record was evicted to make room.
func (h *History) Push(r Record) (evicted bool) {
	if len(h.recs) < HistoryLimit {
		h.recs = append(h.recs, Record{})
	} else {
		evicted = true
	}
	copy(h.recs[1:], h.recs[:len(h.recs)-1])
	h.recs[0] = r
	return evicted
}

// Len returns the number of records held.
func (h *History) Len() int { return len(h.recs) }

// Records returns a copy of the records, newest first.
func (h *History) Records() []Record {
	out := make([]Record, len(h.recs))
	copy(out, h.recs)
	return out
}
