package basket

import (
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"
)

// Status is the lifecycle state of a basket.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Open
	Saved
	// Frozen baskets are in the middle of checkout and cannot be modified.
	Frozen
	// Submitted is terminal.
	Submitted
)

var statusNames = map[Status]string{
	Open:      "Open",
	Saved:     "Saved",
	Frozen:    "Frozen",
	Submitted: "Submitted",
}

// ParseStatus is the inverse of String. It is how stored values are read back.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a basket status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// CanBeEdited reports whether lines may be created, changed or removed.
func (s Status) CanBeEdited() bool {
	return s == Open || s == Saved
}

// EditableStatuses lists the statuses for which CanBeEdited is true, as stored.
func EditableStatuses() []string {
	return []string{Open.String(), Saved.String()}
}

// Freeze moves an editable basket into Frozen.
func (s Status) Freeze() (Status, error) {
	if !s.CanBeEdited() {
		return Unknown, NewNotEditableError(s)
	}
	return Frozen, nil
}

// Thaw returns a frozen basket to Open.
func (s Status) Thaw() (Status, error) {
	if s != Frozen {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to thaw", s),
		)
	}
	return Open, nil
}

// Submit is allowed once, from any status other than Submitted.
func (s Status) Submit() (Status, error) {
	if s == Submitted || s.Validate() != nil {
		return Unknown, NewNotEditableError(s)
	}
	return Submitted, nil
}

func (s Status) lower() string {
	return strings.ToLower(s.String())
}

// CheckEdit rejects line writes unless the status is editable.
func (s Status) CheckEdit() error {
	if !s.CanBeEdited() {
		return NewNotEditableError(s)
	}
	return nil
}

// CheckFlush is CheckEdit with a dedicated rejection for frozen baskets.
func (s Status) CheckFlush() error {
	if s == Frozen {
		return newFrozenError()
	}
	return s.CheckEdit()
}
