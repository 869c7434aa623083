// Package errs provides standardized error types for uidkit.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - FormatError: For malformed textual or binary identifier input
//   - InvalidArgumentError: For well-formed input that is semantically wrong
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For numeric values outside their bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionIsInvalidError: For unknown or unsupported identifier versions
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidFormat)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across wrapping
package errs
