package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNewTruthValueClamps(t *testing.T) {
	tests := []struct {
		name           string
		strength, conf float64
		wantS, wantC   float64
	}{
		{"in range", 0.8, 0.9, 0.8, 0.9},
		{"below and above", -0.5, 1.5, 0.0, 1.0},
		{"above and below", 2.0, -1.0, 1.0, 0.0},
		{"boundaries", 0, 1, 0, 1},
		{"nan", math.NaN(), 0.5, 0, 0.5},
		{"infinities", math.Inf(1), math.Inf(-1), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := NewTruthValue(tt.strength, tt.conf)
			if tv.Strength() != tt.wantS || tv.Confidence() != tt.wantC {
				t.Errorf("NewTruthValue(%v, %v) = (%v, %v), want (%v, %v)",
					tt.strength, tt.conf, tv.Strength(), tv.Confidence(), tt.wantS, tt.wantC)
			}
		})
	}
}

func TestTruthValueDefaults(t *testing.T) {
	tv := DefaultTruthValue()
	if tv.Strength() != 1.0 || tv.Confidence() != 1.0 {
		t.Errorf("default truth value = %v, want (1, 1)", tv)
	}
}

func TestTruthValueMean(t *testing.T) {
	tv := NewTruthValue(0.8, 0.5)
	if math.Abs(tv.Mean()-0.4) > 1e-12 {
		t.Errorf("Mean() = %v, want 0.4", tv.Mean())
	}
}

func TestTruthValueEqualTolerance(t *testing.T) {
	a := NewTruthValue(0.5, 0.5)

	if !a.Equal(NewTruthValue(0.5+1e-7, 0.5-1e-7)) {
		t.Error("values within 1e-6 should be equal")
	}
	if a.Equal(NewTruthValue(0.5+1e-5, 0.5)) {
		t.Error("strength off by 1e-5 should not be equal")
	}
	if a.Equal(NewTruthValue(0.5, 0.51)) {
		t.Error("confidence off by 0.01 should not be equal")
	}
	// 0.1 + 0.2 is not exactly 0.3 in floating point
	if !NewTruthValue(0.1+0.2, 1).Equal(NewTruthValue(0.3, 1)) {
		t.Error("floating point noise should compare equal")
	}
}

func TestTruthValueTupleRoundTrip(t *testing.T) {
	tv := NewTruthValue(0.25, 0.75)
	s, c := tv.Tuple()
	if s != 0.25 || c != 0.75 {
		t.Fatalf("Tuple() = (%v, %v)", s, c)
	}
	back := TruthValueFromTuple([2]float64{s, c})
	if back != tv {
		t.Errorf("round trip changed value: %v -> %v", tv, back)
	}
}

func TestTruthValueJSON(t *testing.T) {
	data, err := json.Marshal(NewTruthValue(0.5, 0.25))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"strength":0.5,"confidence":0.25}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var tv TruthValue
	if err := json.Unmarshal([]byte(`{"strength":3,"confidence":-2}`), &tv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tv.Strength() != 1 || tv.Confidence() != 0 {
		t.Errorf("unmarshal should clamp, got %v", tv)
	}

	if err := json.Unmarshal([]byte(`{"strength":0.4}`), &tv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tv.Strength() != 0.4 || tv.Confidence() != 1 {
		t.Errorf("missing confidence should default to 1, got %v", tv)
	}
}
