// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods return new instances rather than modifying state
package valueobject

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Volume represents the fixed capacity of the box in cubic units.
// A Volume obtained from NewVolume or ParseVolume is always positive and finite.
//
// Example usage:
//
//	v, err := valueobject.ParseVolume("2")
//	if err != nil {
//		// errors.Is(err, valueobject.ErrInvalidInput)
//	}
type Volume struct {
	value float64
}

// NewVolume creates a new Volume value object.
//
// Parameters:
//   - v: volume in cubic units
//
// Returns:
//   - Volume: the validated volume
//   - error: ErrInvalidInput if v is not a positive finite number
func NewVolume(v float64) (Volume, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Volume{}, fmt.Errorf("%w: volume must be a finite number", ErrInvalidInput)
	}
	if v <= 0 {
		return Volume{}, fmt.Errorf("%w: volume must be a positive number, got %g", ErrInvalidInput, v)
	}
	return Volume{value: v}, nil
}

// ParseVolume parses the raw textual form of a volume, as typed by a user.
// Surrounding whitespace is ignored; decimal and exponent forms are accepted,
// hexadecimal floats are not.
//
// Parameters:
//   - raw: the raw text
//
// Returns:
//   - Volume: the validated volume
//   - error: ErrInvalidInput if raw is empty, non-numeric or not positive
func ParseVolume(raw string) (Volume, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Volume{}, fmt.Errorf("%w: volume is required", ErrInvalidInput)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || isHex(s) {
		return Volume{}, fmt.Errorf("%w: %q is not a valid number", ErrInvalidInput, raw)
	}

	return NewVolume(v)
}

// isHex reports whether s carries a 0x prefix, which ParseFloat would accept
// as a hexadecimal float.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// MustVolume creates a Volume and panics on invalid input.
// Intended for constants and tests.
func MustVolume(v float64) Volume {
	vol, err := NewVolume(v)
	if err != nil {
		panic(err)
	}
	return vol
}

// Float64 returns the volume in cubic units.
func (v Volume) Float64() float64 {
	return v.value
}

// IsZero reports whether v is the zero Volume, i.e. was not produced by a constructor.
func (v Volume) IsZero() bool {
	return v.value == 0
}

// String returns the shortest representation that round-trips, e.g. "2".
func (v Volume) String() string {
	return strconv.FormatFloat(v.value, 'f', -1, 64)
}
