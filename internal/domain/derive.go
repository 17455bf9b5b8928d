// Package domain contains the core business logic and entities.
package domain

import (
	"regexp"
	"strings"
	"time"
)

// knownStudios are brand keywords that mark a tag as a source candidate
// even when it does not look like a domain name. Matching is
// case-insensitive substring.
var knownStudios = []string{
	"brazzers",
	"bangbros",
	"naughty america",
	"reality kings",
	"digitalplayground",
	"mofos",
	"fakehub",
	"teamskeet",
	"vixen",
	"blacked",
}

var (
	// videoIDPattern matches the fixed-width hex token after the /embed/
	// path segment of an embed URL.
	videoIDPattern = regexp.MustCompile(`/embed/([0-9a-fA-F]{16})`)

	// datePattern matches an 8-digit run; candidates are then checked as
	// YYYYMMDD since not every 8-digit run in a path is a date.
	datePattern = regexp.MustCompile(`\d{8}`)
)

// DeriveSource returns the source for a record: the first tag that either
// looks like a domain (contains a dot) or contains a known studio
// keyword. First match wins; there is no best-match scoring. Returns
// SourceUnknown when no tag qualifies.
func DeriveSource(tags []string) string {
	for _, tag := range tags {
		if strings.Contains(tag, ".") {
			return tag
		}
		lower := strings.ToLower(tag)
		for _, studio := range knownStudios {
			if strings.Contains(lower, studio) {
				return tag
			}
		}
	}
	return SourceUnknown
}

// ExtractVideoID pulls the 16-hex-digit token following the /embed/
// segment of the embed URL. Returns "" when the URL has no such token.
func ExtractVideoID(embedURL string) string {
	m := videoIDPattern.FindStringSubmatch(embedURL)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// ExtractUploadDate finds the first 8-digit run in the thumbnail path
// that parses as a valid YYYYMMDD date. Returns the zero time when no
// run qualifies.
func ExtractUploadDate(thumbnailURL string) time.Time {
	for _, run := range datePattern.FindAllString(thumbnailURL, -1) {
		t, err := time.Parse("20060102", run)
		if err != nil {
			continue
		}
		// 8-digit runs also show up as resolutions and IDs; only accept
		// plausible years.
		if t.Year() >= 1990 && t.Year() <= 2100 {
			return t
		}
	}
	return time.Time{}
}

// ComputeRating returns likes/(likes+dislikes)*100, or 0 when no votes
// exist. The result is always within [0,100].
func ComputeRating(likes, dislikes int) float64 {
	total := likes + dislikes
	if total == 0 {
		return 0
	}
	return float64(likes) / float64(total) * 100
}

// DeriveHD reports whether any tag or category marks the record as HD.
func DeriveHD(tags, categories []string) bool {
	keywords := []string{"hd", "1080p", "720p"}
	for _, list := range [][]string{tags, categories} {
		for _, entry := range list {
			lower := strings.ToLower(entry)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					return true
				}
			}
		}
	}
	return false
}

// DeriveVR reports whether any tag marks the record as VR, or the title
// mentions VR.
func DeriveVR(tags []string, title string) bool {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "vr") || strings.Contains(lower, "virtual reality") {
			return true
		}
	}
	return strings.Contains(strings.ToLower(title), "vr")
}
