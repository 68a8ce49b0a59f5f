package service

import "errors"

// Error kinds recovered at the handler boundary and translated to HTTP
// status codes. Business-rule failures are reported once; nothing retries.
var (
	// ErrNotFound covers missing entities and unauthorized-by-absence:
	// a doctor asking for another doctor's appointment sees not-found,
	// not forbidden.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers bad input and conflicting business rules,
	// such as booking outside every active schedule window.
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers operations on already-terminal state, such as
	// marking a paid bill paid again.
	ErrConflict = errors.New("conflict")
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is (or wraps) ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsConflict reports whether err is (or wraps) ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
