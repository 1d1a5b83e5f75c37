package domain

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RateStep says: from DateFrom (inclusive) until the next step's DateFrom
// (exclusive), the annual key rate is KeyRate percent.
type RateStep struct {
	DateFrom civil.Date
	KeyRate  decimal.Decimal
}

// Schedule is an ordered list of rate steps, ascending by DateFrom with no
// duplicate dates. A zero-length schedule is valid and means "no rate data".
// Schedules are immutable snapshots; they are rebuilt wholesale, never
// mutated in place.
type Schedule []RateStep

// NewSchedule copies, sorts and deduplicates the given steps. When the same
// date appears more than once the last occurrence wins.
func NewSchedule(steps []RateStep) Schedule {
	sorted := make([]RateStep, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateFrom.Before(sorted[j].DateFrom)
	})

	out := make(Schedule, 0, len(sorted))
	for _, step := range sorted {
		if n := len(out); n > 0 && out[n-1].DateFrom == step.DateFrom {
			out[n-1] = step
			continue
		}
		out = append(out, step)
	}
	return out
}

// RateAt returns the rate applicable on the given date, i.e. the rate of the
// last step at or before it. The second return is false when the date
// precedes every known step or the schedule is empty.
func (s Schedule) RateAt(date civil.Date) (decimal.Decimal, bool) {
	idx := s.applicableIndex(date)
	if idx < 0 {
		return decimal.Decimal{}, false
	}
	return s[idx].KeyRate, true
}

// applicableIndex returns the index of the last step whose DateFrom is at or
// before the given date, or -1.
func (s Schedule) applicableIndex(date civil.Date) int {
	idx := -1
	for i, step := range s {
		if step.DateFrom.After(date) {
			break
		}
		idx = i
	}
	return idx
}
