package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "studytrack.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestGetStateMissing(t *testing.T) {
	c := newTestClient(t)

	state, err := c.GetState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.NewAppState()

	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("default state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateRoundTrip(t *testing.T) {
	c := newTestClient(t)

	state := models.NewAppState()
	state.Coins = 37
	state.Streak = 4
	state.LastDayWatched = timeutil.DayOf(
		time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local),
	)
	state.Stats["dQw4w9WgXcQ"] = models.VideoStats{
		TotalSeconds: 340,
		TotalViews:   2,
	}
	state.Notes["dQw4w9WgXcQ"] = "never gonna give you up"
	state.History = append(state.History, models.WatchSession{
		VideoID:     "dQw4w9WgXcQ",
		URL:         "https://youtu.be/dQw4w9WgXcQ",
		WatchedAt:   time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC),
		Seconds:     212,
		TabSwitches: 1,
		Tag:         "music",
	})
	state.Reminders = append(state.Reminders, models.Reminder{
		Title:     "Evening revision",
		TimeOfDay: "18:30",
	})

	err := c.SaveState(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("state round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetStateCorruptBlob(t *testing.T) {
	c := newTestClient(t)

	err := c.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put(stateKey, []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := c.GetState()
	if err != nil {
		t.Fatalf("expected corrupt blob to be recovered, got: %v", err)
	}

	want := models.NewAppState()

	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("recovered state mismatch (-want +got):\n%s", diff)
	}
}

func TestNewClientSingleInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studytrack.db")

	first, err := NewClient(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Cleanup(func() {
		_ = first.Close()
	})

	_, err = NewClient(path)
	if !errors.Is(err, errAlreadyRunning) {
		t.Errorf("expected errAlreadyRunning for second instance, got %v", err)
	}
}

func TestGetStateConfiguredInitialCoins(t *testing.T) {
	c := newTestClient(t)
	c.SetInitialCoins(120)

	state, err := c.GetState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Coins != 120 {
		t.Errorf("expected fresh state with 120 coins, got %d", state.Coins)
	}

	// a corrupt blob degrades to the same configured balance
	err = c.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put(stateKey, []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err = c.GetState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Coins != 120 {
		t.Errorf("expected recovered state with 120 coins, got %d", state.Coins)
	}
}

func TestGetStatePartialBlob(t *testing.T) {
	c := newTestClient(t)

	// a blob from an older release may omit newer fields entirely
	blob := []byte(`{"coins": 12, "streak": -3}`)

	err := c.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put(stateKey, blob)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := c.GetState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Coins != 12 {
		t.Errorf("expected coins to be 12, got %d", state.Coins)
	}

	if state.Streak != 0 {
		t.Errorf("expected negative streak to reset to 0, got %d", state.Streak)
	}

	if state.Stats == nil || state.Notes == nil || state.History == nil {
		t.Error("expected maps and history to be initialised")
	}
}
