package service

import (
	"context"

	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
)

// Resource is one page-scoped fetch with its own loading and error state.
// Resources are never shared or de-duplicated between pages.
type Resource[T any] struct {
	Label   string
	Data    T
	Loading bool
	Err     error
}

// NewResource returns an idle resource. label names the data in messages,
// e.g. "customers".
func NewResource[T any](label string) *Resource[T] {
	return &Resource[T]{Label: label}
}

// Load runs fetch and records its outcome. Data is only replaced on success.
func (r *Resource[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) *Resource[T] {
	r.Loading = true
	r.Err = nil
	data, err := fetch(ctx)
	if err != nil {
		r.Err = err
	} else {
		r.Data = data
	}
	r.Loading = false
	return r
}

// Loaded reports whether the last Load succeeded.
func (r *Resource[T]) Loaded() bool { return !r.Loading && r.Err == nil }

// Unauthenticated reports whether the fetch hit a 401. The session has
// already been torn down by then; callers only need to navigate.
func (r *Resource[T]) Unauthenticated() bool { return apperrors.IsUnauthenticated(r.Err) }

// ErrorMessage renders the page error: "Error loading <label>" when the API
// could not be reached, "Failed to fetch <label>" when it answered with an
// error, and "" on success.
func (r *Resource[T]) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	if apperrors.IsTransport(r.Err) {
		return "Error loading " + r.Label
	}
	return "Failed to fetch " + r.Label
}
