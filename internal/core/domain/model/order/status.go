package order

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Status represents the fulfilment state of an order.
//
// State transitions:
//
//	Created ──> Processing ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the status of every order produced by checkout.
	Created

	// Processing means fulfilment has started.
	Processing

	// Delivered is final.
	Delivered

	// Cancelled is final.
	Cancelled
)

var statusNames = map[Status]string{
	Created:    "Created",
	Processing: "Processing",
	Delivered:  "Delivered",
	Cancelled:  "Cancelled",
}

// ParseStatus reads a status back from its String form.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// Process transitions Created -> Processing.
func (s Status) Process() (Status, error) {
	if s != Created {
		return Unknown, invalidTransition(s, "process")
	}
	return Processing, nil
}

// Deliver transitions Processing -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Processing {
		return Unknown, invalidTransition(s, "deliver")
	}
	return Delivered, nil
}

// Cancel transitions Created or Processing -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Created && s != Processing {
		return Unknown, invalidTransition(s, "cancel")
	}
	return Cancelled, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}
