package sources

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindUnavailable
	KindMalformed
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnavailable:
		return "unavailable"
	case KindMalformed:
		return "malformed"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation  = &SourceError{Kind: KindValidation}
	ErrUnavailable = &SourceError{Kind: KindUnavailable}
	ErrMalformed   = &SourceError{Kind: KindMalformed}
	ErrNotFound    = &SourceError{Kind: KindNotFound}
)

// SourceError is the only error type adapters return.
type SourceError struct {
	Platform string
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Platform, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is matches any SourceError of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of platform.
func (e *SourceError) Is(target error) bool {
	t, ok := target.(*SourceError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Platform == "" || t.Platform == e.Platform)
}

func newError(platform string, kind ErrorKind, err error, format string, args ...any) *SourceError {
	return &SourceError{
		Platform: platform,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Err:      err,
	}
}

// KindOf extracts the kind of a SourceError, or 0 for other errors.
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
