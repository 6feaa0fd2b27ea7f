package service

import "errors"

// Kind classifies service failures so the HTTP edge can map them to statuses
// without inspecting error strings.
type Kind int

const (
	// KindUnknown covers errors produced outside the taxonomy.
	KindUnknown Kind = iota
	// KindNotFound: the requested user/product/category does not exist.
	KindNotFound
	// KindConflict: a creation collides with an existing unique key.
	KindConflict
	// KindValidation: malformed input, rejected before any store call.
	KindValidation
	// KindUnauthorized: missing or invalid credentials.
	KindUnauthorized
	// KindStore: the graph store failed or returned malformed data.
	KindStore
)

// Error carries a classified failure across the service boundary.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the failure classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the user-facing message without the wrapped cause.
func (e *Error) Message() string { return e.msg }

// NotFoundError builds a KindNotFound error.
func NotFoundError(msg string) error {
	return &Error{kind: KindNotFound, msg: msg}
}

// ConflictError builds a KindConflict error.
func ConflictError(msg string) error {
	return &Error{kind: KindConflict, msg: msg}
}

// ValidationError builds a KindValidation error.
func ValidationError(msg string) error {
	return &Error{kind: KindValidation, msg: msg}
}

// UnauthorizedError builds a KindUnauthorized error.
func UnauthorizedError(msg string) error {
	return &Error{kind: KindUnauthorized, msg: msg}
}

// StoreError wraps a graph store failure.
func StoreError(msg string, err error) error {
	return &Error{kind: KindStore, msg: msg, err: err}
}

// KindOf extracts the classification from err, or KindUnknown.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.kind
	}
	return KindUnknown
}
