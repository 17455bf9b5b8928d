package domain

import "testing"

// fixtureRecords builds a 10-record fixture with mixed categories,
// views and flags.
func fixtureRecords() []Record {
	hd := []Record{
		{Title: "Anal Adventure", Categories: []string{"Anal"}, Views: 2_000_000, Duration: 600, Tags: []string{"hd"}, IsHD: true, Source: "clips4u.com"},
		{Title: "Quiet Morning", Categories: []string{"Amateur"}, Views: 1_500_000, Duration: 300, Performers: []string{"Mia Lane"}},
		{Title: "Anal Basics", Categories: []string{"Anal"}, Views: 900_000, Duration: 1200, Performers: []string{"Ava Storm"}},
		{Title: "Pool Party", Categories: []string{"Outdoor"}, Views: 3_000_000, Duration: 450, Tags: []string{"outdoor"}},
		{Title: "Anal Pro", Categories: []string{"Anal"}, Views: 1_200_000, Duration: 800, Source: "clips4u.com"},
		{Title: "VR Sampler", Categories: []string{"VR"}, Views: 400_000, Duration: 900, IsVR: true},
		{Title: "Studio Cut", Categories: []string{"MILF"}, Views: 2_500_000, Duration: 700, Performers: []string{"Mia Lane"}},
		{Title: "Short Clip", Categories: []string{"Amateur"}, Views: 50_000, Duration: 90},
		{Title: "Anal Finale", Categories: []string{"Anal"}, Views: 100_000, Duration: 650},
		{Title: "Long Feature", Categories: []string{"Feature"}, Views: 1_000_000, Duration: 5400, Tags: []string{"hd", "feature"}, IsHD: true},
	}
	return hd
}

// TestFilter_CategoryAndMinViews covers the conjunction of a category
// filter with a view floor over the 10-record fixture.
func TestFilter_CategoryAndMinViews(t *testing.T) {
	records := fixtureRecords()

	got := Filter(records, Query{Category: "Anal", MinViews: 1_000_000})

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for _, r := range got {
		if r.Views < 1_000_000 {
			t.Errorf("record %q has views %d below floor", r.Title, r.Views)
		}
		if !containsFold(r.Categories, "Anal") {
			t.Errorf("record %q not in category", r.Title)
		}
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	records := fixtureRecords()
	got := Filter(records, Query{})
	if len(got) != len(records) {
		t.Errorf("expected all %d records, got %d", len(records), len(got))
	}
}

func TestFilter_Search(t *testing.T) {
	records := fixtureRecords()

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{name: "title substring, case-insensitive", search: "anal", want: 4},
		{name: "performer match", search: "mia lane", want: 2},
		{name: "tag match", search: "outdoor", want: 1},
		{name: "no match", search: "zzz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, Query{Search: tt.search})
			if len(got) != tt.want {
				t.Errorf("search %q matched %d, want %d", tt.search, len(got), tt.want)
			}
		})
	}
}

func TestFilter_DurationRangeInclusive(t *testing.T) {
	records := []Record{
		{Title: "a", Duration: 99},
		{Title: "b", Duration: 100},
		{Title: "c", Duration: 200},
		{Title: "d", Duration: 201},
	}

	got := Filter(records, Query{MinDuration: 100, MaxDuration: 200})
	if len(got) != 2 || got[0].Title != "b" || got[1].Title != "c" {
		t.Errorf("inclusive range failed: %+v", got)
	}
}

func TestFilter_BooleanFlags(t *testing.T) {
	records := fixtureRecords()

	yes, no := true, false
	if got := Filter(records, Query{IsHD: &yes}); len(got) != 2 {
		t.Errorf("hd=true matched %d, want 2", len(got))
	}
	if got := Filter(records, Query{IsVR: &no}); len(got) != 9 {
		t.Errorf("vr=false matched %d, want 9", len(got))
	}
}

func TestFilter_TagsAnyMatch(t *testing.T) {
	records := fixtureRecords()

	got := Filter(records, Query{Tags: []string{"outdoor", "feature"}})
	if len(got) != 2 {
		t.Errorf("any-match tags matched %d, want 2", len(got))
	}
}

// TestFilter_Pure verifies filtering is a pure function of its inputs:
// identical inputs always yield identical output sets and ordering.
func TestFilter_Pure(t *testing.T) {
	records := fixtureRecords()
	q := Query{Category: "Anal"}

	a := Filter(records, q)
	b := Filter(records, q)

	if len(a) != len(b) {
		t.Fatalf("differing result sizes: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Title != b[i].Title {
			t.Errorf("ordering differs at %d: %q vs %q", i, a[i].Title, b[i].Title)
		}
	}
}
