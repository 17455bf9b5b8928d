package dto

import (
	"time"

	"video-catalog-service/internal/domain"
)

// VideoResponse represents a single video in the response.
type VideoResponse struct {
	VideoID         string   `json:"video_id,omitempty"`
	EmbedURL        string   `json:"embed_url"`
	Title           string   `json:"title"`
	Duration        int      `json:"duration"`
	Views           int      `json:"views"`
	Likes           int      `json:"likes"`
	Dislikes        int      `json:"dislikes"`
	Comments        int      `json:"comments"`
	Rating          float64  `json:"rating"`
	Thumbnail       string   `json:"thumbnail"`
	ThumbnailSeq    []string `json:"thumbnail_seq,omitempty"`
	AltThumbnail    string   `json:"alt_thumbnail,omitempty"`
	AltThumbnailSeq []string `json:"alt_thumbnail_seq,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Performers      []string `json:"performers,omitempty"`
	Source          string   `json:"source"`
	Uploaded        string   `json:"uploaded,omitempty"`
	IsHD            bool     `json:"is_hd"`
	IsVR            bool     `json:"is_vr"`
}

// FromDomainRecord converts a domain.Record to a VideoResponse.
func FromDomainRecord(r domain.Record) VideoResponse {
	uploaded := ""
	if r.HasUploadDate() {
		uploaded = r.Uploaded.Format("2006-01-02")
	}

	return VideoResponse{
		VideoID:         r.VideoID,
		EmbedURL:        r.EmbedURL,
		Title:           r.Title,
		Duration:        r.Duration,
		Views:           r.Views,
		Likes:           r.Likes,
		Dislikes:        r.Dislikes,
		Comments:        r.Comments,
		Rating:          r.Rating,
		Thumbnail:       r.Thumbnail,
		ThumbnailSeq:    r.ThumbnailSeq,
		AltThumbnail:    r.AltThumbnail,
		AltThumbnailSeq: r.AltThumbnailSeq,
		Tags:            r.Tags,
		Categories:      r.Categories,
		Performers:      r.Performers,
		Source:          r.Source,
		Uploaded:        uploaded,
		IsHD:            r.IsHD,
		IsVR:            r.IsVR,
	}
}

// VideoListResponse represents a page of query results.
type VideoListResponse struct {
	Videos     []VideoResponse `json:"videos"`
	Pagination PaginationMeta  `json:"pagination"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// FromQueryResult converts a domain.QueryResult to a VideoListResponse.
func FromQueryResult(result *domain.QueryResult) VideoListResponse {
	videos := make([]VideoResponse, len(result.Records))
	for i, r := range result.Records {
		videos[i] = FromDomainRecord(r)
	}

	return VideoListResponse{
		Videos: videos,
		Pagination: PaginationMeta{
			Total:      result.Total,
			Page:       result.Page,
			TotalPages: result.TotalPages,
			HasMore:    result.HasMore,
		},
	}
}

// StatsResponse represents dataset statistics.
type StatsResponse struct {
	TotalVideos     int           `json:"total_videos"`
	TotalSize       int64         `json:"total_size"`
	Sources         []string      `json:"sources"`
	Categories      []string      `json:"categories"`
	Performers      []string      `json:"performers"`
	DateRange       DateRangeMeta `json:"date_range"`
	AverageDuration float64       `json:"average_duration"`
	TotalViews      int64         `json:"total_views"`
	Approximate     bool          `json:"approximate"`
	SampleSize      int           `json:"sample_size"`
}

// DateRangeMeta holds formatted date bounds; empty when unknown.
type DateRangeMeta struct {
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// FromDomainStats converts domain.DatabaseStats to a StatsResponse.
func FromDomainStats(s *domain.DatabaseStats) StatsResponse {
	return StatsResponse{
		TotalVideos:     s.TotalVideos,
		TotalSize:       s.TotalSize,
		Sources:         s.Sources,
		Categories:      s.Categories,
		Performers:      s.Performers,
		DateRange:       fromDateRange(s.DateRange),
		AverageDuration: s.AverageDuration,
		TotalViews:      s.TotalViews,
		Approximate:     s.Approximate,
		SampleSize:      s.SampleSize,
	}
}

// FilterOptionsResponse represents the available filter values.
type FilterOptionsResponse struct {
	Sources    []string      `json:"sources"`
	Categories []string      `json:"categories"`
	Performers []string      `json:"performers"`
	DateRange  DateRangeMeta `json:"date_range"`
}

// FromDomainFilterOptions converts domain.FilterOptions.
func FromDomainFilterOptions(o *domain.FilterOptions) FilterOptionsResponse {
	return FilterOptionsResponse{
		Sources:    o.Sources,
		Categories: o.Categories,
		Performers: o.Performers,
		DateRange:  fromDateRange(o.DateRange),
	}
}

func fromDateRange(dr domain.DateRange) DateRangeMeta {
	meta := DateRangeMeta{}
	if !dr.Earliest.IsZero() {
		meta.Earliest = dr.Earliest.Format("2006-01-02")
	}
	if !dr.Latest.IsZero() {
		meta.Latest = dr.Latest.Format("2006-01-02")
	}
	return meta
}

// ReloadResponse represents the outcome of a snapshot reload.
type ReloadResponse struct {
	Version  uint64 `json:"version"`
	Records  int    `json:"records"`
	Duration string `json:"duration"`
}

// NewReloadResponse builds a ReloadResponse.
func NewReloadResponse(version uint64, records int, duration time.Duration) ReloadResponse {
	return ReloadResponse{
		Version:  version,
		Records:  records,
		Duration: duration.String(),
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
