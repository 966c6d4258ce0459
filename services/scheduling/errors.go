package scheduling

import (
	"errors"
	"fmt"
)

// Error codes for booking and slot-generation failures. Callers branch on
// these to decide between "pick another slot", "retry later" and "give up".
const (
	CodeInvalidDuration          = "invalidDuration"
	CodeConflictCheckUnavailable = "conflictCheckUnavailable"
	CodeSlotUnavailable          = "slotUnavailable"
	CodePersistenceFailure       = "persistenceFailure"
)

// Error is a typed scheduling failure.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, message string) error {
	return &Error{Code: code, Message: message}
}

func wrapError(code, message string, err error) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err is a scheduling Error carrying the given code.
func HasCode(err error, code string) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}
