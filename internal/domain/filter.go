package domain

import "strings"

// Filter returns the records matching every predicate present in the
// query, preserving input order. Absent predicates are always-true, so a
// zero query returns every record. The evaluation order is fixed for
// deterministic behavior, though the predicates commute.
func Filter(records []Record, q Query) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if Matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies the conjunction of
// the query's predicates.
func Matches(r Record, q Query) bool {
	if q.Search != "" && !matchesSearch(r, q.Search) {
		return false
	}
	if q.Category != "" && !containsFold(r.Categories, q.Category) {
		return false
	}
	if q.Source != "" && !strings.EqualFold(r.Source, q.Source) {
		return false
	}
	if q.Performer != "" && !containsFold(r.Performers, q.Performer) {
		return false
	}
	if q.MinDuration > 0 && r.Duration < q.MinDuration {
		return false
	}
	if q.MaxDuration > 0 && r.Duration > q.MaxDuration {
		return false
	}
	if q.MinViews > 0 && r.Views < q.MinViews {
		return false
	}
	if q.IsHD != nil && r.IsHD != *q.IsHD {
		return false
	}
	if q.IsVR != nil && r.IsVR != *q.IsVR {
		return false
	}
	if len(q.Tags) > 0 && !anyTagMatch(r.Tags, q.Tags) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match against the
// title, performers, categories and tags.
func matchesSearch(r Record, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(r.Title), needle) {
		return true
	}
	for _, list := range [][]string{r.Performers, r.Categories, r.Tags} {
		for _, entry := range list {
			if strings.Contains(strings.ToLower(entry), needle) {
				return true
			}
		}
	}
	return false
}

// containsFold reports whether list contains value, ignoring case.
func containsFold(list []string, value string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, value) {
			return true
		}
	}
	return false
}

// anyTagMatch reports a non-empty intersection between the record's tags
// and the requested tags, ignoring case.
func anyTagMatch(recordTags, wanted []string) bool {
	for _, w := range wanted {
		if containsFold(recordTags, w) {
			return true
		}
	}
	return false
}
