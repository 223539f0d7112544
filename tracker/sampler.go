package tracker

// Sampler converts playback position samples into accumulated watch time.
// Only forward deltas within a plausible range are counted: rewinds and
// seek jumps are dropped, never subtracted, and the reference position is
// always advanced so that rewatching a rewound segment counts again.
type Sampler struct {
	maxDelta float64
	last     float64
	primed   bool
}

// NewSampler returns a sampler that ignores position jumps of maxDelta
// seconds or more.
func NewSampler(maxDelta float64) *Sampler {
	return &Sampler{maxDelta: maxDelta}
}

// Prime sets the reference position without accumulating anything.
func (s *Sampler) Prime(position float64) {
	s.last = position
	s.primed = true
}

// Observe ingests a position sample and returns the seconds to add to
// the accumulated watch time, which is 0 unless 0 < delta < maxDelta.
func (s *Sampler) Observe(position float64) float64 {
	if !s.primed {
		s.Prime(position)
		return 0
	}

	delta := position - s.last
	s.last = position

	if delta <= 0 || delta >= s.maxDelta {
		return 0
	}

	return delta
}
