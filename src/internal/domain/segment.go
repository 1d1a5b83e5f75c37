package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Segment is a sub-interval [Start, End) of a queried date range during
// which exactly one rate applies. Derived per request, never persisted.
type Segment struct {
	Start civil.Date
	End   civil.Date
	Rate  decimal.Decimal
}

// Split breaks [start, end) into contiguous, non-overlapping segments
// aligned to the schedule's step-change dates. The caller guarantees
// start < end.
//
// The result is empty in two cases the caller must distinguish itself:
// the schedule has no steps at all, or start precedes every known step
// (the earliest-rate fallback is deliberately left to the caller, see
// CalcService).
func (s Schedule) Split(start, end civil.Date) []Segment {
	idx := s.applicableIndex(start)
	if idx < 0 {
		return nil
	}

	var out []Segment
	cur := start
	for i := idx; i < len(s) && cur.Before(end); i++ {
		segEnd := end
		if i+1 < len(s) && s[i+1].DateFrom.Before(end) {
			segEnd = s[i+1].DateFrom
		}
		out = append(out, Segment{Start: cur, End: segEnd, Rate: s[i].KeyRate})
		cur = segEnd
	}
	return out
}
