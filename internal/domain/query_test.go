package domain

import (
	"fmt"
	"testing"
)

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name      string
		in        Query
		wantPage  int
		wantLimit int
	}{
		{name: "zero query gets defaults", in: Query{}, wantPage: 1, wantLimit: 20},
		{name: "negative page corrected", in: Query{Page: -5, Limit: 10}, wantPage: 1, wantLimit: 10},
		{name: "oversized limit capped", in: Query{Page: 2, Limit: 1000}, wantPage: 2, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Validate()
			if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", q.Page, q.Limit, tt.wantPage, tt.wantLimit)
			}
			if q.SortBy == "" || q.SortOrder == "" {
				t.Error("sort defaults not applied")
			}
		})
	}
}

func TestQuery_Signature_Stable(t *testing.T) {
	hd := true
	q := Query{
		Search:   "Beach",
		Category: "Amateur",
		MinViews: 1000,
		Tags:     []string{"hd", "outdoor"},
		IsHD:     &hd,
		SortBy:   SortFieldViews,
	}

	if q.Signature() != q.Signature() {
		t.Error("signature not stable across calls")
	}
}

func TestQuery_Signature_IgnoresPagination(t *testing.T) {
	a := Query{Category: "Anal", Page: 1, Limit: 20, SortBy: SortFieldViews, SortOrder: SortOrderDesc}
	b := Query{Category: "Anal", Page: 7, Limit: 50, SortBy: SortFieldViews, SortOrder: SortOrderDesc}

	if a.Signature() != b.Signature() {
		t.Error("pagination must not affect the signature: all pages share one result list")
	}
}

func TestQuery_Signature_DistinguishesQueries(t *testing.T) {
	base := Query{Category: "Anal", SortBy: SortFieldViews, SortOrder: SortOrderDesc}
	other := Query{Category: "Anal", MinViews: 1, SortBy: SortFieldViews, SortOrder: SortOrderDesc}

	if base.Signature() == other.Signature() {
		t.Error("different filters must produce different signatures")
	}

	reversed := base
	reversed.SortOrder = SortOrderAsc
	if base.Signature() == reversed.Signature() {
		t.Error("sort order must be part of the signature")
	}
}

// TestNewQueryResult_Completeness verifies concatenating all pages
// reproduces the filtered set exactly once, with no duplicates or gaps.
func TestNewQueryResult_Completeness(t *testing.T) {
	records := make([]Record, 45)
	for i := range records {
		records[i] = Record{Title: fmt.Sprintf("r%02d", i)}
	}

	q := DefaultQuery() // limit 20
	var seen []string
	for page := 1; page <= 3; page++ {
		q.Page = page
		result := NewQueryResult(records, q)

		wantLen := 20
		if page == 3 {
			wantLen = 5
		}
		if len(result.Records) != wantLen {
			t.Errorf("page %d: len = %d, want %d", page, len(result.Records), wantLen)
		}

		wantMore := page < 3
		if result.HasMore != wantMore {
			t.Errorf("page %d: HasMore = %v, want %v", page, result.HasMore, wantMore)
		}
		if result.Total != 45 || result.TotalPages != 3 {
			t.Errorf("page %d: total=%d totalPages=%d, want 45/3", page, result.Total, result.TotalPages)
		}

		for _, r := range result.Records {
			seen = append(seen, r.Title)
		}
	}

	if len(seen) != 45 {
		t.Fatalf("concatenated pages hold %d records, want 45", len(seen))
	}
	for i, title := range seen {
		if title != fmt.Sprintf("r%02d", i) {
			t.Errorf("position %d = %q, out of order or duplicated", i, title)
		}
	}
}

func TestNewQueryResult_PageBeyondData(t *testing.T) {
	records := make([]Record, 5)

	q := DefaultQuery()
	q.Page = 3
	result := NewQueryResult(records, q)

	if len(result.Records) != 0 {
		t.Errorf("expected empty slice, got %d records", len(result.Records))
	}
	if result.HasMore {
		t.Error("HasMore must be false beyond the last page")
	}
	if result.Total != 5 || result.TotalPages != 1 {
		t.Errorf("total=%d totalPages=%d, want 5/1", result.Total, result.TotalPages)
	}
}

func TestNewQueryResult_Empty(t *testing.T) {
	q := DefaultQuery()
	result := NewQueryResult(nil, q)

	if result.Total != 0 || result.TotalPages != 0 || result.HasMore {
		t.Errorf("unexpected result for empty input: %+v", result)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
}
