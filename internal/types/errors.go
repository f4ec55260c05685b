package types

import (
	"errors"
	"fmt"
	"strings"
)

// The engine's error taxonomy. NotFound and Validation are returned before
// any generation round trip; Upstream means the round trip itself failed and
// no state was written, so a retry is always safe.

// NotFoundError reports an absent or inaccessible case, summons, or section.
type NotFoundError struct {
	Resource string // "case", "summons", "section", "template"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound constructs a NotFoundError.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports a precondition failure: insufficient grounding
// data before generation, empty feedback on reject, or an incomplete
// approval set before assembly. Missing enumerates the exact field or
// section names the caller must supply.
type ValidationError struct {
	Reason  string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Missing, ", "))
}

// NewValidation constructs a ValidationError without missing-field detail.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NewMissingFields constructs a ValidationError enumerating missing fields.
func NewMissingFields(reason string, missing []string) *ValidationError {
	return &ValidationError{Reason: reason, Missing: missing}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError reports a failed or timed-out generation round trip. The
// wrapped cause is preserved for logs; persisted state is untouched.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation upstream failure during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstream wraps a transport or timeout failure.
func NewUpstream(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
