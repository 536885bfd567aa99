package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotFound is wrapped by LoadError when a single-item fetch comes back empty.
var ErrNotFound = errors.New("item not found")

// ErrorKind classifies a failed load.
type ErrorKind int

const (
	ErrNetwork ErrorKind = iota
	ErrTimeout
	ErrHTTPStatus
	ErrDecode
	ErrMissing
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTimeout:
		return "timeout"
	case ErrHTTPStatus:
		return "http status"
	case ErrDecode:
		return "decode"
	case ErrMissing:
		return "not found"
	default:
		return "network"
	}
}

// LoadError is returned by every failed fetch or image probe.
type LoadError struct {
	Kind       ErrorKind
	StatusCode int // set for ErrHTTPStatus
	Message    string
	Err        error
}

func (e *LoadError) Error() string {
	if e.Kind == ErrHTTPStatus {
		return fmt.Sprintf("%s: status %d", e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a LoadError caused by the request bound.
func IsTimeout(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == ErrTimeout
}

// classifyTransport turns an http.Client error into a LoadError.
func classifyTransport(message string, err error) *LoadError {
	kind := ErrNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeout
	}
	return &LoadError{Kind: kind, Message: message, Err: err}
}
