package errs

import (
	"errors"
	"fmt"
)

var ErrNotAcceptable = errors.New("not acceptable")

// NotAcceptableError is a caller correctable rejection of a business operation.
// Reason is safe to show to the end user; Rule is the sentinel of the violated rule.
type NotAcceptableError struct {
	Reason string
	Rule   error
}

func NewNotAcceptableError(rule error, reason string) *NotAcceptableError {
	return &NotAcceptableError{Reason: reason, Rule: rule}
}

func NewNotAcceptableErrorf(rule error, format string, args ...any) *NotAcceptableError {
	return &NotAcceptableError{Reason: fmt.Sprintf(format, args...), Rule: rule}
}

func (e *NotAcceptableError) Error() string {
	return e.Reason
}

func (e *NotAcceptableError) Unwrap() []error {
	if e.Rule == nil {
		return []error{ErrNotAcceptable}
	}
	return []error{ErrNotAcceptable, e.Rule}
}

// Reason extracts the user facing reason of a rejection, if err carries one.
func Reason(err error) (string, bool) {
	var na *NotAcceptableError
	if errors.As(err, &na) {
		return na.Reason, true
	}
	return "", false
}
