package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// TruthEpsilon is the absolute tolerance used when comparing truth values.
const TruthEpsilon = 1e-6

// TruthValue is a probabilistic annotation: how strongly something holds
// and how much evidence backs it. Both components live in [0, 1].
type TruthValue struct {
	strength   float64
	confidence float64
}

// NewTruthValue clamps both inputs into [0, 1]. Out-of-range values are
// never rejected; NaN collapses to 0.
func NewTruthValue(strength, confidence float64) TruthValue {
	return TruthValue{
		strength:   clampUnit(strength),
		confidence: clampUnit(confidence),
	}
}

// DefaultTruthValue is full strength with full confidence.
func DefaultTruthValue() TruthValue {
	return TruthValue{strength: 1.0, confidence: 1.0}
}

// TruthValueFromTuple builds a truth value from a (strength, confidence) pair.
func TruthValueFromTuple(v [2]float64) TruthValue {
	return NewTruthValue(v[0], v[1])
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (tv TruthValue) Strength() float64   { return tv.strength }
func (tv TruthValue) Confidence() float64 { return tv.confidence }

// Mean is the strength weighted by confidence.
func (tv TruthValue) Mean() float64 {
	return tv.strength * tv.confidence
}

// Tuple returns (strength, confidence).
func (tv TruthValue) Tuple() (float64, float64) {
	return tv.strength, tv.confidence
}

// Equal compares both components within TruthEpsilon.
func (tv TruthValue) Equal(other TruthValue) bool {
	return math.Abs(tv.strength-other.strength) < TruthEpsilon &&
		math.Abs(tv.confidence-other.confidence) < TruthEpsilon
}

func (tv TruthValue) String() string {
	return fmt.Sprintf("TruthValue(strength=%.3f, confidence=%.3f)", tv.strength, tv.confidence)
}

type truthValueJSON struct {
	Strength   float64 `json:"strength"`
	Confidence float64 `json:"confidence"`
}

func (tv TruthValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(truthValueJSON{Strength: tv.strength, Confidence: tv.confidence})
}

// UnmarshalJSON clamps like NewTruthValue. Missing fields default to 1.0.
func (tv *TruthValue) UnmarshalJSON(data []byte) error {
	raw := truthValueJSON{Strength: 1.0, Confidence: 1.0}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*tv = NewTruthValue(raw.Strength, raw.Confidence)
	return nil
}
