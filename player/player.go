// Package player defines the minimal playback-source surface the tracker
// depends on, together with a simulated source used for offline sessions
// and tests. Real players plug in by implementing Source.
package player

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// EventKind is a playback state transition reported by a source.
type EventKind int

const (
	Ready EventKind = iota
	Playing
	Paused
	Ended
)

func (e EventKind) String() string {
	switch e {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}

	return "unknown"
}

// Event is emitted by a source on every playback state change.
type Event struct {
	Kind EventKind
}

// Source is a handle to a playback source. Position is sampled on demand
// by the tracker's polling loop; state changes arrive on Events.
type Source interface {
	// Start begins playback delivery. It returns ErrSourceUnavailable
	// if the underlying platform is not ready yet.
	Start(ctx context.Context) error
	// Position reports the current playback position in seconds.
	Position() float64
	// Duration reports the total length in seconds, or 0 if unknown.
	Duration() float64
	// Events delivers playback state changes until Destroy is called.
	Events() <-chan Event
	// Destroy stops playback and releases the source.
	Destroy()
}

// ErrSourceUnavailable indicates the platform player is not ready yet.
// It is a recoverable condition: callers retry rather than surface it.
var ErrSourceUnavailable = errors.New("playback source not ready")

// ErrInvalidVideo indicates a malformed video reference. It is surfaced
// to the user and causes no state change.
var ErrInvalidVideo = errors.New(
	"invalid video reference: provide a valid YouTube URL or 11-character ID",
)

var (
	bareIDRegex = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	urlIDRegex  = regexp.MustCompile(
		`(?:youtube\.com/.*(?:v=|embed/)|youtu\.be/)([0-9A-Za-z_-]{11})`,
	)
)

// ParseVideoID extracts the video identifier from a URL or a bare ID.
func ParseVideoID(urlOrID string) (string, error) {
	if urlOrID == "" {
		return "", ErrInvalidVideo
	}

	if bareIDRegex.MatchString(urlOrID) {
		return urlOrID, nil
	}

	m := urlIDRegex.FindStringSubmatch(urlOrID)
	if m == nil {
		return "", ErrInvalidVideo
	}

	return m[1], nil
}

// CanonicalURL returns the short URL for a video ID.
func CanonicalURL(videoID string) string {
	return "https://youtu.be/" + videoID
}

// connectRetryDelay is how long to wait before retrying an unavailable
// source.
const connectRetryDelay = 300 * time.Millisecond

// Connect starts the source, retrying indefinitely while it reports
// unavailability. It returns only when the source started or the context
// was cancelled (i.e. the video was unloaded).
func Connect(ctx context.Context, src Source) error {
	for {
		err := src.Start(ctx)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrSourceUnavailable) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectRetryDelay):
		}
	}
}
