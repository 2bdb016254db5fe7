// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used across the domain, application, and adapter layers.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) used as unwrap target
//   - a struct carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() formatting and Unwrap() support for errors.Is/errors.As
//
// Messages are sanitized so that user-supplied values cannot inject
// newlines into log output.
package errs
