// Package pagination implements limit/skip windowing over query strings,
// matching the upstream catalog API's paging scheme.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size used when the request does not specify one.
	DefaultLimit = 12
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// DefaultParams returns the default pagination window.
func DefaultParams() Params {
	return Params{
		Limit: DefaultLimit,
		Skip:  0,
	}
}

// FromRequest extracts limit/skip parameters from an HTTP request.
// Out-of-range values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= MaxLimit {
			p.Limit = v
		}
	}

	if skip := r.URL.Query().Get("skip"); skip != "" {
		if v, err := strconv.Atoi(skip); err == nil && v >= 0 {
			p.Skip = v
		}
	}

	return p
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

// NewResult creates a paginated result. HasMore uses the window heuristic:
// a full page suggests more rows may exist, a short page guarantees the end.
func NewResult[T any](data []T, total int, params Params) Result[T] {
	return Result[T]{
		Data:    data,
		Total:   total,
		Skip:    params.Skip,
		Limit:   params.Limit,
		HasMore: len(data) >= params.Limit,
	}
}
