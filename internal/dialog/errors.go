package dialog

import "fmt"

type ErrorCode string

const (
	ErrorUnknownIntent   ErrorCode = "UNKNOWN_INTENT"
	ErrorInvalidEnvelope ErrorCode = "INVALID_ENVELOPE"
	ErrorInternal        ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("dialog: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("dialog: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError is exported for the handler, which raises envelope-level
// failures in the same taxonomy.
func NewError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
