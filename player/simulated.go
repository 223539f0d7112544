package player

import (
	"context"
	"sync"
	"time"
)

// Simulated is a playback source that advances its position in real time
// while playing. It stands in for a platform player during offline
// sessions and in tests.
type Simulated struct {
	mu        sync.Mutex
	events    chan Event
	position  float64
	duration  float64
	playing   bool
	destroyed bool
	lastTick  time.Time

	// startFailures makes Start fail this many times before succeeding,
	// simulating a platform player that is still loading.
	startFailures int
}

// NewSimulated returns a simulated source for a video of the given
// duration in seconds.
func NewSimulated(duration float64) *Simulated {
	return &Simulated{
		duration: duration,
		events:   make(chan Event, 16),
	}
}

// FailStarts makes the next n Start calls report ErrSourceUnavailable.
func (s *Simulated) FailStarts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startFailures = n
}

func (s *Simulated) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startFailures > 0 {
		s.startFailures--

		return ErrSourceUnavailable
	}

	s.emit(Ready)

	return nil
}

// Play begins or resumes playback.
func (s *Simulated) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || s.playing {
		return
	}

	s.playing = true
	s.lastTick = time.Now()
	s.emit(Playing)
}

// Pause suspends playback, freezing the position.
func (s *Simulated) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || !s.playing {
		return
	}

	s.advanceLocked()
	s.playing = false
	s.emit(Paused)
}

// Seek jumps to the given position in seconds.
func (s *Simulated) Seek(position float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 {
		position = 0
	}

	if s.duration > 0 && position > s.duration {
		position = s.duration
	}

	s.advanceLocked()
	s.position = position
}

func (s *Simulated) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advanceLocked()

	return s.position
}

func (s *Simulated) Duration() float64 {
	return s.duration
}

func (s *Simulated) Events() <-chan Event {
	return s.events
}

func (s *Simulated) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}

	s.destroyed = true
	s.playing = false
	close(s.events)
}

// advanceLocked moves the position forward by the wall-clock time elapsed
// since the last advance. Emits Ended when the end is reached.
func (s *Simulated) advanceLocked() {
	if !s.playing {
		return
	}

	now := time.Now()
	s.position += now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	if s.duration > 0 && s.position >= s.duration {
		s.position = s.duration
		s.playing = false
		s.emit(Ended)
	}
}

func (s *Simulated) emit(kind EventKind) {
	if s.destroyed {
		return
	}

	// drop events rather than block the caller
	select {
	case s.events <- Event{Kind: kind}:
	default:
	}
}
