// Package errs provides the typed errors shared by the checkout service.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired) used with errors.Is
//   - a struct type carrying the details and an optional Cause
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// NotAcceptableError is the odd one out: it is the single user facing class for
// business rule rejections (empty basket, total mismatch, ...). It unwraps to both
// ErrNotAcceptable and the rule that was violated, so callers can match either.
package errs
