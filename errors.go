package toolgate

import (
	"errors"
	"fmt"
)

// Kind names a failure class in the result envelope. Kinds are stable
// strings; callers may switch on them or compare with KindOf.
type Kind string

const (
	KindToolNotFound       Kind = "ToolNotFound"
	KindMissingParameter   Kind = "MissingParameter"
	KindTypeMismatch       Kind = "TypeMismatch"
	KindUnknownParameter   Kind = "UnknownParameter"
	KindMiddlewareRejected Kind = "MiddlewareRejected"
	KindHandlerError       Kind = "HandlerError"
	KindInternalError      Kind = "InternalError"
)

// ErrDuplicateTool is returned by Registry.Register when the name is taken.
// Registration is append-only; there is no re-registration.
var ErrDuplicateTool = errors.New("tool name already registered")

// InvocationError is the structured failure carried inside a Result.
// Err optionally wraps the underlying cause for errors.Is/errors.As.
type InvocationError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *InvocationError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Unwrap supports errors.Is/errors.As on the wrapped cause.
func (e *InvocationError) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or "" if err is not (and does not
// wrap) an InvocationError.
func KindOf(err error) Kind {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

func errf(kind Kind, format string, a ...any) *InvocationError {
	return &InvocationError{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// asInvocationError keeps an existing InvocationError as is and wraps any
// other error under the given fallback kind.
func asInvocationError(err error, fallback Kind) *InvocationError {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return ie
	}
	return &InvocationError{Kind: fallback, Message: err.Error(), Err: err}
}
