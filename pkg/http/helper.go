package http

import (
	"net/http"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"strconv"
)

// ExtractLimitOffset reads limit and offset query parameters. A missing
// limit falls back to pageSize.
func ExtractLimitOffset(r *http.Request, pageSize int) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit, pageSize)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractPage converts a 1-based page query parameter into a limit/offset
// pair of the given page size.
func ExtractPage(r *http.Request, pageSize int) (int, int64, error) {
	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}
	return pageSize, int64(page-1) * int64(pageSize), nil
}

// OptionalInt64 parses an integer query parameter, returning nil when absent.
func OptionalInt64(r *http.Request, name string) (*int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return &v, nil
}

// ExtractPagination accepts either a page parameter or explicit limit/offset.
func ExtractPagination(r *http.Request, pageSize int) (int, int64, error) {
	if r.URL.Query().Has("page") {
		return ExtractPage(r, pageSize)
	}
	return ExtractLimitOffset(r, pageSize)
}
