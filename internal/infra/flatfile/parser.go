// Package flatfile reads the catalog dump: one pipe-delimited record
// per line, list-valued fields delimited by semicolons.
package flatfile

import (
	"fmt"
	"strconv"
	"strings"

	"video-catalog-service/internal/domain"
)

// Field layout of one dump line. The trailing comment-count field is
// optional and defaults to 0.
const (
	fieldEmbedURL = iota
	fieldThumbnail
	fieldThumbnailSeq
	fieldTitle
	fieldTags
	fieldCategories
	fieldPerformers
	fieldDuration
	fieldViews
	fieldLikes
	fieldDislikes
	fieldAltThumbnail
	fieldAltThumbnailSeq
	fieldComments

	// minFields is the number of mandatory fields per line.
	minFields = 13
)

// Parser turns dump lines into domain records.
type Parser struct {
	fieldSep string
	listSep  string
}

// NewParser creates a parser with the given delimiters. Empty delimiters
// fall back to the dump defaults ("|" and ";").
func NewParser(fieldSep, listSep string) *Parser {
	if fieldSep == "" {
		fieldSep = "|"
	}
	if listSep == "" {
		listSep = ";"
	}
	return &Parser{fieldSep: fieldSep, listSep: listSep}
}

// ParseLine parses a single dump line into a Record with all derived
// fields populated. A malformed line (too few fields, unparseable
// numbers) returns an error and no record; it never aborts the caller's
// loop over the rest of the file.
func (p *Parser) ParseLine(line string) (domain.Record, error) {
	fields := strings.Split(line, p.fieldSep)
	if len(fields) < minFields {
		return domain.Record{}, fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))
	}

	duration, err := parseCount("duration", fields[fieldDuration])
	if err != nil {
		return domain.Record{}, err
	}
	views, err := parseCount("views", fields[fieldViews])
	if err != nil {
		return domain.Record{}, err
	}
	likes, err := parseCount("likes", fields[fieldLikes])
	if err != nil {
		return domain.Record{}, err
	}
	dislikes, err := parseCount("dislikes", fields[fieldDislikes])
	if err != nil {
		return domain.Record{}, err
	}

	comments := 0
	if len(fields) > fieldComments && strings.TrimSpace(fields[fieldComments]) != "" {
		comments, err = parseCount("comments", fields[fieldComments])
		if err != nil {
			return domain.Record{}, err
		}
	}

	r := domain.Record{
		EmbedURL:        strings.TrimSpace(fields[fieldEmbedURL]),
		Thumbnail:       strings.TrimSpace(fields[fieldThumbnail]),
		ThumbnailSeq:    p.splitList(fields[fieldThumbnailSeq]),
		Title:           strings.TrimSpace(fields[fieldTitle]),
		Tags:            p.splitList(fields[fieldTags]),
		Categories:      p.splitList(fields[fieldCategories]),
		Performers:      p.splitList(fields[fieldPerformers]),
		Duration:        duration,
		Views:           views,
		Likes:           likes,
		Dislikes:        dislikes,
		AltThumbnail:    strings.TrimSpace(fields[fieldAltThumbnail]),
		AltThumbnailSeq: p.splitList(fields[fieldAltThumbnailSeq]),
		Comments:        comments,
	}

	if r.EmbedURL == "" {
		return domain.Record{}, fmt.Errorf("embed URL is empty")
	}

	r.Derive()

	return r, nil
}

// splitList splits a list-valued field, trimming entries and discarding
// empty sub-entries. Order is preserved.
func (p *Parser) splitList(field string) []string {
	parts := strings.Split(field, p.listSep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseCount parses a non-negative integer field.
func parseCount(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("parsing %s: negative value %d", name, n)
	}
	return n, nil
}
