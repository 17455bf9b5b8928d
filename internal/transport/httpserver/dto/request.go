// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strings"

	"video-catalog-service/internal/domain"
)

// VideoQueryRequest represents the query parameters for listing videos.
type VideoQueryRequest struct {
	Search      string `query:"search" validate:"max=200"`
	Category    string `query:"category" validate:"max=100"`
	Source      string `query:"source" validate:"max=100"`
	Performer   string `query:"performer" validate:"max=100"`
	Tags        string `query:"tags" validate:"max=500"` // comma-separated, any-match
	MinDuration int    `query:"min_duration" validate:"omitempty,min=0"`
	MaxDuration int    `query:"max_duration" validate:"omitempty,min=0"`
	MinViews    int    `query:"min_views" validate:"omitempty,min=0"`
	HD          string `query:"hd" validate:"omitempty,oneof=true false"`
	VR          string `query:"vr" validate:"omitempty,oneof=true false"`
	SortBy      string `query:"sort_by" validate:"omitempty,oneof=date views duration rating title"`
	SortOrder   string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page        int    `query:"page" validate:"omitempty,min=1"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ToQuery converts the request into a domain.Query, applying defaults
// for every omitted parameter.
func (r *VideoQueryRequest) ToQuery() domain.Query {
	q := domain.DefaultQuery()

	q.Search = r.Search
	q.Category = r.Category
	q.Source = r.Source
	q.Performer = r.Performer
	q.MinDuration = r.MinDuration
	q.MaxDuration = r.MaxDuration
	q.MinViews = r.MinViews
	q.Tags = splitTags(r.Tags)

	if r.HD != "" {
		hd := r.HD == "true"
		q.IsHD = &hd
	}
	if r.VR != "" {
		vr := r.VR == "true"
		q.IsVR = &vr
	}

	if r.SortBy != "" {
		q.SortBy = domain.SortField(r.SortBy)
	}
	if r.SortOrder != "" {
		q.SortOrder = domain.SortOrder(r.SortOrder)
	}
	if r.Page > 0 {
		q.Page = r.Page
	}
	if r.Limit > 0 {
		q.Limit = r.Limit
	}

	return q
}

// splitTags splits the comma-separated tag list, dropping empty entries.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
