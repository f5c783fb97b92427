package errs

import "errors"

var (
	// ErrIssueNotFound maps to HTTP 404.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrValidation marks caller input that violates a contract; wrap it
	// with the field detail. Maps to HTTP 400.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidUpload marks a rejected file upload (disallowed type or
	// oversized). Maps to HTTP 400.
	ErrInvalidUpload = errors.New("invalid upload")
)
