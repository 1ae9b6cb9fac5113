package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a listing failure.
type ErrorKind int

const (
	// KindInternal is an unexpected file system failure (permission denied, I/O error).
	KindInternal ErrorKind = iota
	// KindForbidden means the requested path resolves outside the served root.
	KindForbidden
	// KindNotFound means the target does not exist or is not a directory.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// ListingError is returned by the listing service. Message is safe to send
// back to the client as a plain-text body.
type ListingError struct {
	Kind    ErrorKind
	Path    string
	Message string
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// --- Specific Error Creator Functions ---

// NewForbiddenError creates a ListingError for paths escaping the root.
// HTTP status: 403.
func NewForbiddenError(path string) *ListingError {
	return &ListingError{Kind: KindForbidden, Path: path, Message: "Access denied"}
}

// NewDirectoryNotFoundError creates a ListingError for missing targets or
// targets that are not directories.
// HTTP status: 404.
func NewDirectoryNotFoundError(path string) *ListingError {
	return &ListingError{Kind: KindNotFound, Path: path, Message: "Directory not found"}
}

// NewInternalError creates a ListingError carrying the underlying error text.
// HTTP status: 500.
func NewInternalError(path string, err error) *ListingError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ListingError{Kind: KindInternal, Path: path, Message: msg}
}

// --- HTTP Status Mapping ---

// MapErrorToHTTPStatus maps a listing error kind to an HTTP status code.
func MapErrorToHTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
