package tracker

import (
	"math"
	"testing"
)

func TestSamplerForwardDeltas(t *testing.T) {
	s := NewSampler(60)

	var total float64

	// the 20 is a rewind: dropped, but the reference still moves so the
	// rewatched span counts again as the position re-passes it
	for _, pos := range []float64{0, 10, 25, 20, 45, 70, 125} {
		total += s.Observe(pos)
	}

	if total != 130 {
		t.Errorf("expected 130 accumulated seconds, got %v", total)
	}
}

func TestSamplerIgnoresRewinds(t *testing.T) {
	s := NewSampler(60)

	var total float64

	for _, pos := range []float64{0, 30, 10, 5, 2} {
		total += s.Observe(pos)
	}

	if total != 30 {
		t.Errorf("rewinds must not subtract: expected 30, got %v", total)
	}
}

func TestSamplerIgnoresImplausibleJumps(t *testing.T) {
	s := NewSampler(60)

	var total float64

	// 0 -> 5 counts; 5 -> 500 is a seek and is dropped; 500 -> 510 counts
	for _, pos := range []float64{0, 5, 500, 510} {
		total += s.Observe(pos)
	}

	if total != 15 {
		t.Errorf("expected 15 accumulated seconds, got %v", total)
	}
}

func TestSamplerBoundaryDelta(t *testing.T) {
	s := NewSampler(60)

	s.Prime(0)

	// exactly maxDelta is implausible and dropped
	if got := s.Observe(60); got != 0 {
		t.Errorf("expected delta of exactly 60 to be dropped, got %v", got)
	}

	// just under the threshold counts
	if got := s.Observe(119.9); math.Abs(got-59.9) > 1e-9 {
		t.Errorf("expected 59.9, got %v", got)
	}
}

func TestSamplerAccumulationIsMonotone(t *testing.T) {
	s := NewSampler(60)

	positions := []float64{0, 3, 1, 4, 1, 5, 9, 2, 6}

	var total, prev float64

	for _, pos := range positions {
		total += s.Observe(pos)

		if total < prev {
			t.Fatalf("accumulated seconds decreased: %v -> %v", prev, total)
		}

		prev = total
	}
}
