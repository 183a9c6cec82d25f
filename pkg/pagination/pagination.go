// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page-based list parameters and builds the
// "meta" block of paginated responses.
//
// Query parameters:
//
//	?page=2&limit=50
//
// Pages are 1-indexed. A malformed or non-positive value falls back to its
// default. A limit above [MaxLimit] and a page above [MaxPage] are clamped,
// which keeps [Params.Offset] within int32 range for every accepted request.
package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage is the highest page reachable at [MaxLimit].
	MaxPage = math.MaxInt32 / MaxLimit

	// Query parameter names.
	ParamPage  = "page"
	ParamLimit = "limit"
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip before the page starts.
// Out-of-range fields are clamped first, so the result is never negative.
func (p Params) Offset() int {
	page := min(max(p.Page, DefaultPage), MaxPage)
	limit := min(max(p.Limit, 0), MaxLimit)
	return (page - 1) * limit
}

// Meta describes the page returned alongside a list payload.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives the page count from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads page and limit from the query string.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	params := Params{
		Page:  positiveOr(query.Get(ParamPage), DefaultPage),
		Limit: positiveOr(query.Get(ParamLimit), DefaultLimit),
	}
	params.Page = min(params.Page, MaxPage)
	params.Limit = min(params.Limit, MaxLimit)

	return params
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
