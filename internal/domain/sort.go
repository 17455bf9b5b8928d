package domain

import (
	"sort"
	"strings"
)

// Sort orders records in place by the requested field and direction.
// The sort is stable: records with equal keys keep their pre-sort
// relative order across repeated invocations on the same input.
//
// Field semantics: date sorts by upload date with absent dates treated
// as earliest; title sorts case-insensitively; views, duration and
// rating sort numerically.
func Sort(records []Record, by SortField, order SortOrder) {
	less := lessFunc(by)
	if order == SortOrderDesc {
		asc := less
		less = func(a, b Record) bool { return asc(b, a) }
	}

	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func lessFunc(by SortField) func(a, b Record) bool {
	switch by {
	case SortFieldDate:
		return func(a, b Record) bool {
			// Zero time already sorts before any real date.
			return a.Uploaded.Before(b.Uploaded)
		}
	case SortFieldDuration:
		return func(a, b Record) bool { return a.Duration < b.Duration }
	case SortFieldRating:
		return func(a, b Record) bool { return a.Rating < b.Rating }
	case SortFieldTitle:
		return func(a, b Record) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return func(a, b Record) bool { return a.Views < b.Views }
	}
}
