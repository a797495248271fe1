package bms

import (
	"math"
	"testing"
)

func TestCorrectorEnvelope(t *testing.T) {
	c := actionCorrector{minKW: -1, maxKW: 1, weight: 10}
	for a := -3.0; a <= 3.0; a += 0.125 {
		corrected, penalty, v := c.correct(a)
		if corrected < c.minKW || corrected > c.maxKW {
			t.Fatalf("correct(%v) = %v escaped envelope", a, corrected)
		}
		inBounds := a >= c.minKW && a <= c.maxKW
		if inBounds != (v == nil) {
			t.Fatalf("correct(%v): violation = %v, in bounds = %v", a, v, inBounds)
		}
		if inBounds && (corrected != a || penalty != 0) {
			t.Fatalf("correct(%v) altered an in-bounds action: (%v, %v)", a, corrected, penalty)
		}
		if !inBounds {
			want := 10 * math.Abs(a-corrected)
			if math.Abs(penalty-want) > 1e-12 {
				t.Fatalf("correct(%v) penalty = %v, want %v", a, penalty, want)
			}
		}
	}
}

func TestCorrectorReportsDirection(t *testing.T) {
	c := actionCorrector{minKW: -1, maxKW: 1, weight: 10}
	if _, _, v := c.correct(2); v == nil || v.Corrected != 1 {
		t.Errorf("over-request: %+v", v)
	}
	if _, _, v := c.correct(-2); v == nil || v.Corrected != -1 {
		t.Errorf("under-request: %+v", v)
	}
}
