package valueobject

import "errors"

// Domain errors define the validation failures value objects can report.
// Callers compare with errors.Is; the returned errors wrap these sentinels
// with a human-readable reason.
var (
	// ErrInvalidInput is returned when a volume is non-numeric, non-finite,
	// zero or negative.
	ErrInvalidInput = errors.New("invalid input")
)

// IsInvalidInput checks if the error is a volume validation error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
