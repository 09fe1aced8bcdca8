package presenter

import (
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// SummaryLine is one labelled measurement of the numeric summary.
type SummaryLine struct {
	Label  string  `json:"label"`
	Symbol string  `json:"symbol,omitempty"`
	Value  float64 `json:"value"`
	Text   string  `json:"text"`
	Unit   string  `json:"unit"`
}

// Summary is the numeric result of one optimization.
type Summary struct {
	Lines []SummaryLine `json:"lines"`
	Note  string        `json:"note"`
}

const summaryNote = "A box with these dimensions minimizes the material (surface area) needed for the given volume."

// Summary builds the numeric summary: width, length, height, area, volume.
func (p *Presenter) Summary(spec valueobject.BoxSpec) Summary {
	line := func(label, symbol string, v float64, unit string) SummaryLine {
		return SummaryLine{Label: label, Symbol: symbol, Value: v, Text: p.Number(v), Unit: unit}
	}

	return Summary{
		Lines: []SummaryLine{
			line("Width", "x", spec.Width, "u"),
			line("Length", "y", spec.Length, "u"),
			line("Height", "h", spec.Height, "u"),
			line("Minimal area", "", spec.Area, "u²"),
			line("Volume", "", spec.Volume, "u³"),
		},
		Note: summaryNote,
	}
}
