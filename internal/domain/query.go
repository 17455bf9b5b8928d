package domain

import (
	"fmt"
	"strings"
	"time"
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortField represents the field to sort by.
type SortField string

const (
	SortFieldDate     SortField = "date"
	SortFieldViews    SortField = "views"
	SortFieldDuration SortField = "duration"
	SortFieldRating   SortField = "rating"
	SortFieldTitle    SortField = "title"
)

// Query holds filter, sort and pagination parameters for a catalog
// query. Any zero-valued field means "no constraint".
type Query struct {
	// Pagination
	Page  int // 1-indexed
	Limit int // items per page

	// Filters
	Search      string // case-insensitive substring over title/performers/categories/tags
	Category    string
	Source      string
	Performer   string
	MinDuration int // seconds, inclusive
	MaxDuration int // seconds, inclusive; 0 = unbounded
	MinViews    int
	Tags        []string // any-match
	IsHD        *bool
	IsVR        *bool

	// Sorting
	SortBy    SortField
	SortOrder SortOrder
}

// DefaultQuery returns a query with the default page, limit and sort.
func DefaultQuery() Query {
	return Query{
		Page:      1,
		Limit:     20,
		SortBy:    SortFieldViews,
		SortOrder: SortOrderDesc,
	}
}

// Validate ensures query params are within acceptable bounds. This is
// bound correction, not validation.
func (q *Query) Validate() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.SortBy == "" {
		q.SortBy = SortFieldViews
	}
	if q.SortOrder == "" {
		q.SortOrder = SortOrderDesc
	}
}

// Offset calculates the slice offset for pagination.
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Signature returns a canonical serialization of the filter and sort
// parameters, with stable field ordering, for use as a cache key.
// Pagination is deliberately excluded: all pages of one query share the
// same filtered+sorted result list.
func (q *Query) Signature() string {
	var sb strings.Builder

	writeField := func(name, value string) {
		if value == "" {
			return
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(value)
		sb.WriteByte(';')
	}
	writeBool := func(name string, value *bool) {
		if value == nil {
			return
		}
		writeField(name, fmt.Sprintf("%t", *value))
	}

	writeField("search", strings.ToLower(q.Search))
	writeField("category", q.Category)
	writeField("source", q.Source)
	writeField("performer", q.Performer)
	if q.MinDuration > 0 {
		writeField("min_duration", fmt.Sprintf("%d", q.MinDuration))
	}
	if q.MaxDuration > 0 {
		writeField("max_duration", fmt.Sprintf("%d", q.MaxDuration))
	}
	if q.MinViews > 0 {
		writeField("min_views", fmt.Sprintf("%d", q.MinViews))
	}
	writeField("tags", strings.Join(q.Tags, ","))
	writeBool("hd", q.IsHD)
	writeBool("vr", q.IsVR)
	writeField("sort", string(q.SortBy)+","+string(q.SortOrder))

	return sb.String()
}

// QueryResult holds one page of filtered and sorted records.
type QueryResult struct {
	Records    []Record `json:"records"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	HasMore    bool     `json:"has_more"`
}

// NewQueryResult paginates the full filtered+sorted record list
// according to the query. Pages beyond the available data yield an
// empty (non-nil) slice, not an error.
func NewQueryResult(records []Record, q Query) *QueryResult {
	if records == nil {
		records = []Record{}
	}
	total := len(records)

	totalPages := total / q.Limit
	if total%q.Limit > 0 {
		totalPages++
	}

	start := q.Offset()
	end := start + q.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &QueryResult{
		Records:    records[start:end],
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages,
		HasMore:    q.Page*q.Limit < total,
	}
}

// DateRange holds the observed upload date bounds of a dataset.
type DateRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// DatabaseStats holds dataset-wide aggregates. When Approximate is set
// the numbers are stride-sample estimates: the distinct sets are subsets
// of the true sets, and counts/averages are extrapolations.
type DatabaseStats struct {
	TotalVideos     int       `json:"total_videos"`
	TotalSize       int64     `json:"total_size"` // backing file size in bytes
	Sources         []string  `json:"sources"`
	Categories      []string  `json:"categories"`
	Performers      []string  `json:"performers"`
	DateRange       DateRange `json:"date_range"`
	AverageDuration float64   `json:"average_duration"` // seconds
	TotalViews      int64     `json:"total_views"`

	Approximate bool `json:"approximate"`
	SampleSize  int  `json:"sample_size"`
}

// FilterOptions holds the distinct filter values exposed to callers,
// derived from DatabaseStats.
type FilterOptions struct {
	Sources    []string  `json:"sources"`
	Categories []string  `json:"categories"`
	Performers []string  `json:"performers"` // capped, alphabetical
	DateRange  DateRange `json:"date_range"`
}

// PerformerOptionsCap bounds the performer list in FilterOptions;
// performer counts can reach tens of thousands.
const PerformerOptionsCap = 100

// Options derives the filter options from stats, capping performers to
// the first PerformerOptionsCap alphabetically.
func (s *DatabaseStats) Options() FilterOptions {
	performers := s.Performers
	if len(performers) > PerformerOptionsCap {
		performers = performers[:PerformerOptionsCap]
	}

	return FilterOptions{
		Sources:    s.Sources,
		Categories: s.Categories,
		Performers: performers,
		DateRange:  s.DateRange,
	}
}
