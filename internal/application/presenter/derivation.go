package presenter

import (
	"fmt"

	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// Step is one step of the derivation narrative.
type Step struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Lines  []string `json:"lines"`
}

// DerivationSteps is the number of steps Derivation always returns.
const DerivationSteps = 10

// Derivation walks from the problem statement to the minimal area,
// substituting the values of spec along the way.
func (p *Presenter) Derivation(spec valueobject.BoxSpec) []Step {
	x := p.Number(spec.Width)
	y := p.Number(spec.Length)
	h := p.Number(spec.Height)
	xy := p.Number(spec.Width * spec.Length)
	area := p.Number(spec.Area)
	v := raw(spec.Volume)

	steps := [][]string{
		{
			"Problem statement",
			fmt.Sprintf("Fixed volume: V = %s u³", v),
			"Rectangular base: x × y",
			"Height: h",
			"Area to minimize: A = xy + 2xh + 2yh (base + 4 walls)",
		},
		{
			"Volume constraint",
			"Since the volume is fixed: V = xyh",
			"Solving for h: h = V/(xy)",
		},
		{
			"Substitution into the area",
			"A(x,y) = xy + 2x·V/(xy) + 2y·V/(xy)",
			"A(x,y) = xy + 2V/y + 2V/x",
		},
		{
			"Partial derivatives set to zero",
			"∂A/∂x = y - 2V/x² = 0",
			"∂A/∂y = x - 2V/y² = 0",
		},
		{
			"From the first equation",
			"y = 2V/x²",
		},
		{
			"From the second equation",
			"x = 2V/y²",
		},
		{
			"Substituting y into the second equation",
			"x = 2V/(2V/x²)² = x⁴/(2V)",
			"2V = x³",
			fmt.Sprintf("x = ∛(2V) = %s", x),
		},
		{
			"Symmetry",
			fmt.Sprintf("y = x = %s", y),
		},
		{
			"Height",
			fmt.Sprintf("h = V/(x·y) = V/%s = %s", xy, h),
		},
		{
			"Minimal area",
			fmt.Sprintf("A = xy + 2xh + 2yh = %s u²", area),
		},
	}

	out := make([]Step, 0, DerivationSteps)
	for i, s := range steps {
		out = append(out, Step{Number: i + 1, Title: s[0], Lines: s[1:]})
	}
	return out
}
