package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy shared by every persistence backend. Handlers map these
// onto HTTP status codes; backend-specific error text stays server-side.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("an application with this email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrWeakPassword      = errors.New("password must be at least 6 characters")
	ErrSelfModification  = errors.New("cannot modify your own account")
	ErrLastSuperadmin    = errors.New("cannot remove the last active superadmin")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrForbidden         = errors.New("superadmin access required")
	ErrStoreUnavailable  = errors.New("storage temporarily unavailable")

	// Authentication failures. The transport layer presents all three as a
	// uniform 401 so callers learn nothing about which case occurred.
	ErrTokenMissing    = errors.New("missing token")
	ErrTokenInvalid    = errors.New("invalid or expired token")
	ErrAccountInactive = errors.New("account no longer active")
)

// ValidationError carries per-field detail for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
