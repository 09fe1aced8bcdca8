package dto

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/domain/entity"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// ErrVolumeType is returned when the volume field is neither a number nor a string.
var ErrVolumeType = errors.New("volume must be a number or a numeric string")

// RawVolume is the volume exactly as the client sent it.
// Both {"volume": 2} and {"volume": "2"} are accepted.
type RawVolume string

// UnmarshalJSON implements json.Unmarshaler.
func (v *RawVolume) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = RawVolume(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrVolumeType
	}
	*v = RawVolume(n.String())
	return nil
}

// ComputeBoxRequest is the body of POST /api/v1/boxes.
type ComputeBoxRequest struct {
	// Volume in cubic units.
	Volume RawVolume `json:"volume"`
}

// BoxResponse is the result of one optimization.
type BoxResponse struct {
	ID         string                `json:"id"`
	Input      string                `json:"input"`
	Volume     float64               `json:"volume"`
	Width      float64               `json:"width"`
	Length     float64               `json:"length"`
	Height     float64               `json:"height"`
	Area       float64               `json:"area"`
	Vertices   [8]valueobject.Vertex `json:"vertices"`
	Faces      [5]valueobject.Face   `json:"faces"`
	ComputedAt time.Time             `json:"computed_at"`
}

// NewBoxResponse maps a Computation to its API representation.
//
// Parameters:
//   - c: the computation
//
// Returns:
//   - BoxResponse: the response payload
func NewBoxResponse(c *entity.Computation) BoxResponse {
	s := c.Spec
	return BoxResponse{
		ID:         c.ID.String(),
		Input:      c.Input,
		Volume:     s.Volume,
		Width:      s.Width,
		Length:     s.Length,
		Height:     s.Height,
		Area:       s.Area,
		Vertices:   s.Vertices(),
		Faces:      s.Faces(),
		ComputedAt: c.ComputedAt,
	}
}

// SummaryResponse is the numeric summary of one optimization.
type SummaryResponse struct {
	ID string `json:"id"`
	presenter.Summary
}

// DerivationResponse lists the derivation steps of one optimization.
type DerivationResponse struct {
	ID    string           `json:"id"`
	Steps []presenter.Step `json:"steps"`
}
