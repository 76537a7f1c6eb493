package movable

import (
	"fmt"
	"sort"
)

// Gap is a run of missing sort orders.
type Gap struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func (g Gap) Size() int64 {
	return g.End - g.Start + 1
}

// IntegrityReport summarizes how far a collection is from 1..N.
type IntegrityReport struct {
	Count      int     `json:"count"`
	Max        int64   `json:"max"`
	Gaps       []Gap   `json:"gaps,omitempty"`
	Duplicates []int64 `json:"duplicates,omitempty"`
	// NonPositive holds ids whose sort order is below 1.
	NonPositive []int64 `json:"nonPositive,omitempty"`
}

func (r IntegrityReport) Dense() bool {
	return len(r.Gaps) == 0 && len(r.Duplicates) == 0 && len(r.NonPositive) == 0 &&
		r.Max == int64(r.Count)
}

// Inspect does not require entries to be sorted.
func Inspect(entries []Entry) IntegrityReport {
	report := IntegrityReport{Count: len(entries)}
	if len(entries) == 0 {
		return report
	}

	orders := make([]int64, 0, len(entries))
	for _, e := range entries {
		if e.SortOrder < 1 {
			report.NonPositive = append(report.NonPositive, e.ID)
			continue
		}
		orders = append(orders, e.SortOrder)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i] < orders[j] })

	expected := int64(1)
	for i, o := range orders {
		if i > 0 && o == orders[i-1] {
			if len(report.Duplicates) == 0 || report.Duplicates[len(report.Duplicates)-1] != o {
				report.Duplicates = append(report.Duplicates, o)
			}
			continue
		}
		if o > expected {
			report.Gaps = append(report.Gaps, Gap{Start: expected, End: o - 1})
		}
		expected = o + 1
	}
	if len(orders) > 0 {
		report.Max = orders[len(orders)-1]
	}
	return report
}

// CheckDense returns ErrInvariantViolation unless the sort orders are exactly 1..N.
func CheckDense(entries []Entry) error {
	report := Inspect(entries)
	if report.Dense() {
		return nil
	}
	return fmt.Errorf("%w: count=%d max=%d gaps=%v duplicates=%v non_positive=%v",
		ErrInvariantViolation, report.Count, report.Max, report.Gaps, report.Duplicates, report.NonPositive)
}
