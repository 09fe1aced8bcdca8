// Package presenter turns a BoxSpec into the text shown to users: a numeric
// summary and the step-by-step derivation of the optimum.
package presenter

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultPrecision is the number of decimals shown for every measurement.
const DefaultPrecision = 4

// MaxPrecision is the largest precision the number formatter supports.
const MaxPrecision = 9

// ErrInvalidPrecision is returned when a precision outside 0..MaxPrecision is requested.
var ErrInvalidPrecision = errors.New("precision must be between 0 and 9")

// groupingLimit is where humanize's integer conversion stops being exact.
const groupingLimit = 1e15

// Presenter formats BoxSpec values with a fixed number of decimals.
type Presenter struct {
	precision int
	pattern   string
}

// New creates a Presenter.
//
// Parameters:
//   - precision: decimals shown for every number (0..MaxPrecision)
//
// Returns:
//   - *Presenter: the presenter
//   - error: ErrInvalidPrecision if precision is out of range
func New(precision int) (*Presenter, error) {
	if precision < 0 || precision > MaxPrecision {
		return nil, ErrInvalidPrecision
	}
	return &Presenter{
		precision: precision,
		pattern:   "#,###." + strings.Repeat("#", precision),
	}, nil
}

// Default returns a Presenter using DefaultPrecision.
func Default() *Presenter {
	p, _ := New(DefaultPrecision)
	return p
}

// Precision returns the number of decimals in use.
func (p *Presenter) Precision() int {
	return p.precision
}

// Number formats v with thousands grouping and the configured decimals,
// e.g. 12345.6789 -> "12,345.6789".
func (p *Presenter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= groupingLimit {
		return strconv.FormatFloat(v, 'f', p.precision, 64)
	}
	return humanize.FormatFloat(p.pattern, v)
}

// raw formats v the shortest way that round-trips, as the user typed it.
func raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
