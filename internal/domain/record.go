// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"errors"
	"time"
)

// ErrNotReady is returned when the record store has not finished its
// first load yet.
var ErrNotReady = errors.New("record store not ready")

// SourceUnknown is the sentinel source for records where no candidate
// could be derived from the tags.
const SourceUnknown = "Unknown"

// Record is one parsed content entry from the dump file.
//
// The derived fields (Source, VideoID, Uploaded, Rating, IsHD, IsVR) are
// computed once at parse time and are a pure function of the raw fields:
// re-parsing the same line always produces the same values.
type Record struct {
	// Raw fields
	EmbedURL        string   `json:"embed_url"`
	Title           string   `json:"title"`
	Duration        int      `json:"duration"` // seconds
	Views           int      `json:"views"`
	Likes           int      `json:"likes"`
	Dislikes        int      `json:"dislikes"`
	Comments        int      `json:"comments"`
	Thumbnail       string   `json:"thumbnail"`
	ThumbnailSeq    []string `json:"thumbnail_seq,omitempty"` // display order matters
	AltThumbnail    string   `json:"alt_thumbnail,omitempty"`
	AltThumbnailSeq []string `json:"alt_thumbnail_seq,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Performers      []string `json:"performers,omitempty"`

	// Derived fields
	Source   string    `json:"source"`
	VideoID  string    `json:"video_id,omitempty"`
	Uploaded time.Time `json:"uploaded,omitempty"` // zero when unknown
	Rating   float64   `json:"rating"`             // [0,100]
	IsHD     bool      `json:"is_hd"`
	IsVR     bool      `json:"is_vr"`
}

// Derive fills in all derived fields from the raw fields.
func (r *Record) Derive() {
	r.Source = DeriveSource(r.Tags)
	r.VideoID = ExtractVideoID(r.EmbedURL)
	r.Uploaded = ExtractUploadDate(r.Thumbnail)
	r.Rating = ComputeRating(r.Likes, r.Dislikes)
	r.IsHD = DeriveHD(r.Tags, r.Categories)
	r.IsVR = DeriveVR(r.Tags, r.Title)
}

// HasUploadDate reports whether an upload date could be derived.
func (r *Record) HasUploadDate() bool {
	return !r.Uploaded.IsZero()
}
