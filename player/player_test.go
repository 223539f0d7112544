package player

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseVideoID(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{input: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{input: "", wantErr: true},
		{input: "not a url", wantErr: true},
		{input: "https://example.com/watch?v=dQw4w9WgXcQ", wantErr: true},
		{input: "tooshort", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseVideoID(tc.input)

			if tc.wantErr {
				if !errors.Is(err, ErrInvalidVideo) {
					t.Errorf("expected ErrInvalidVideo, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tc.want {
				t.Errorf("expected video ID %q, got %q", tc.want, got)
			}
		})
	}
}

func TestConnectRetriesUntilReady(t *testing.T) {
	src := NewSimulated(120)
	src.FailStarts(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Connect(ctx, src)
	if err != nil {
		t.Fatalf("expected connect to retry to success, got: %v", err)
	}

	select {
	case ev := <-src.Events():
		if ev.Kind != Ready {
			t.Errorf("expected ready event, got %v", ev.Kind)
		}
	default:
		t.Error("expected a ready event to be emitted")
	}
}

func TestConnectStopsOnCancel(t *testing.T) {
	src := NewSimulated(120)
	src.FailStarts(1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Connect(ctx, src)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatedLifecycle(t *testing.T) {
	src := NewSimulated(0.05)

	src.Play()

	time.Sleep(100 * time.Millisecond)

	if pos := src.Position(); pos != 0.05 {
		t.Errorf("expected position clamped to duration, got %v", pos)
	}

	var sawEnded bool

	for {
		select {
		case ev := <-src.Events():
			if ev.Kind == Ended {
				sawEnded = true
			}

			continue
		default:
		}

		break
	}

	if !sawEnded {
		t.Error("expected an ended event at end of playback")
	}

	src.Destroy()

	// destroy closes the event channel exactly once
	src.Destroy()

	if _, open := <-src.Events(); open {
		t.Error("expected event channel to be closed after destroy")
	}
}

func TestSimulatedSeekClamps(t *testing.T) {
	src := NewSimulated(100)

	src.Seek(-5)

	if pos := src.Position(); pos != 0 {
		t.Errorf("expected position 0 after negative seek, got %v", pos)
	}

	src.Seek(500)

	if pos := src.Position(); pos != 100 {
		t.Errorf("expected position clamped to 100, got %v", pos)
	}
}
