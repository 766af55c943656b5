package afterbuy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidArgument is matched by every error a facade method returns.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports caller input rejected before any request was sent.
type InvalidArgumentError struct {
	CallName string
	// Fields maps the offending field to a readable message.
	Fields map[string]string
}

func newInvalidArgument(callName, field, message string) *InvalidArgumentError {
	return &InvalidArgumentError{CallName: callName, Fields: map[string]string{field: message}}
}

func (e *InvalidArgumentError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s: %s", e.CallName, ErrInvalidArgument, strings.Join(parts, "; "))
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// MarshallingError is a failure converting between a typed value and XML.
type MarshallingError struct {
	// Op is "serialize" or "deserialize".
	Op       string
	CallName string
	Err      error
}

func (e *MarshallingError) Error() string {
	return fmt.Sprintf("afterbuy %s %s: %v", e.Op, e.CallName, e.Err)
}

func (e *MarshallingError) Unwrap() error {
	return e.Err
}

// TransportError is a network fault or a response outside the 2xx range.
type TransportError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("afterbuy request failed: %v", e.Err)
	}
	return fmt.Sprintf("afterbuy responded with HTTP status code %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FailureKind tags why a call produced no response.
type FailureKind int

const (
	FailureTransport FailureKind = iota + 1
	FailureMarshalling
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureMarshalling:
		return "marshalling"
	default:
		return "unknown"
	}
}

// Failure is the logged reason a call returned no response.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result holds either the decoded response or the failure that replaced it.
// Transport and marshalling problems never surface as errors from the
// client; they are logged and reported here.
type Result[T any] struct {
	Response *T
	Failure  *Failure
}

// OK reports whether a response was decoded.
func (r Result[T]) OK() bool {
	return r.Failure == nil && r.Response != nil
}
