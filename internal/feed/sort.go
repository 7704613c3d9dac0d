package feed

import (
	"sort"

	"jobtrack-engine/internal/domain"
)

// SortKey selects the ordering of the filtered view.
type SortKey string

const (
	SortLatest SortKey = "latest" // ascending days-since-posted, freshest first
	SortScore  SortKey = "score"  // descending match score
	SortSalary SortKey = "salary" // descending first digit run of the range
)

// ParseSortKey maps a raw query value to a SortKey. Unknown values mean
// "leave catalog order alone", not an error.
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(s)
	switch k {
	case SortLatest, SortScore, SortSalary:
		return k, true
	}
	return "", false
}

// sortPostings orders in place. All sorts are stable so equal keys keep
// catalog relative order. An unrecognized key is a no-op.
func sortPostings(ps []domain.ScoredPosting, key SortKey) {
	switch key {
	case SortLatest:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].PostedDaysAgo < ps[j].PostedDaysAgo
		})
	case SortScore:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Score > ps[j].Score
		})
	case SortSalary:
		sort.SliceStable(ps, func(i, j int) bool {
			return ExtractSalary(ps[i].SalaryRange) > ExtractSalary(ps[j].SalaryRange)
		})
	}
}

// maxSalary caps the accumulator; a digit run past this would overflow int.
const maxSalary = 1_000_000_000

// ExtractSalary pulls the first contiguous digit run out of a free-text
// salary range: "3-5 LPA" -> 3, "₹15k/mo" -> 15. No digits means 0, which
// sorts below everything. Runs past maxSalary saturate there.
func ExtractSalary(s string) int {
	n := 0
	found := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			found = true
			if n < maxSalary {
				n = n*10 + int(r-'0')
				if n > maxSalary {
					n = maxSalary
				}
			}
			continue
		}
		if found {
			break
		}
	}
	if !found {
		return 0
	}
	return n
}
