// Package apperr defines the error kinds surfaced by the indexing and
// profile pipelines and how they map onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	Validation              Kind = "validation"
	NotFound                Kind = "not_found"
	RateLimited             Kind = "rate_limited"
	Transport               Kind = "transport"
	NoFilesFound            Kind = "no_files_found"
	IndexingFailed          Kind = "indexing_failed"
	ProfileGenerationFailed Kind = "profile_generation_failed"
	EmptyResponse           Kind = "empty_response"
)

// Error is a classified failure. Msg is what callers see; Err keeps the
// upstream cause for errors.Is / errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so sentinel-style checks
// like errors.Is(err, &Error{Kind: NotFound}) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HasKind reports whether err carries the given kind.
func HasKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCode maps an error onto the HTTP status returned to clients.
func StatusCode(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
