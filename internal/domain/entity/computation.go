// Package entity contains the core business entities of the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hapkiduki/boxopt/internal/domain/optimizer"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// Computation is one optimization request and its result.
// It is created fresh for every request and never persisted.
type Computation struct {
	// ID is the unique identifier of this computation
	ID uuid.UUID `json:"id"`

	// Input is the raw text the volume was parsed from
	Input string `json:"input"`

	// Spec is the optimal box
	Spec valueobject.BoxSpec `json:"spec"`

	// ComputedAt is the timestamp when the result was produced
	ComputedAt time.Time `json:"computed_at"`
}

// NewComputation parses raw and runs the optimizer on it.
//
// Parameters:
//   - raw: the volume as typed by the user
//
// Returns:
//   - *Computation: newly created Computation
//   - error: valueobject.ErrInvalidInput if raw is not a positive number
func NewComputation(raw string) (*Computation, error) {
	volume, err := valueobject.ParseVolume(raw)
	if err != nil {
		return nil, err
	}
	return newComputation(raw, volume), nil
}

// NewComputationFromVolume runs the optimizer on an already numeric volume.
//
// Parameters:
//   - v: volume in cubic units
//
// Returns:
//   - *Computation: newly created Computation
//   - error: valueobject.ErrInvalidInput if v is not a positive finite number
func NewComputationFromVolume(v float64) (*Computation, error) {
	volume, err := valueobject.NewVolume(v)
	if err != nil {
		return nil, err
	}
	return newComputation(volume.String(), volume), nil
}

func newComputation(raw string, volume valueobject.Volume) *Computation {
	return &Computation{
		ID:         uuid.New(),
		Input:      raw,
		Spec:       optimizer.Optimize(volume),
		ComputedAt: time.Now().UTC(),
	}
}
