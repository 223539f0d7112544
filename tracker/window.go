package tracker

// FocusWindow is the bounded period during which tab-switch penalties
// apply. It is ephemeral and never persisted.
type FocusWindow struct {
	Duration  int // seconds
	Remaining int // seconds, counts down to 0
	Active    bool
}

// newFocusWindow returns an active window of the given length in minutes.
func newFocusWindow(minutes int) *FocusWindow {
	secs := minutes * 60

	return &FocusWindow{
		Duration:  secs,
		Remaining: secs,
		Active:    true,
	}
}

// Tick advances the countdown by one second. At zero the window flips
// inactive: penalties cease but session accumulation continues.
func (w *FocusWindow) Tick() {
	if w == nil || !w.Active {
		return
	}

	w.Remaining--

	if w.Remaining <= 0 {
		w.Remaining = 0
		w.Active = false
	}
}

// InEffect reports whether penalties currently apply.
func (w *FocusWindow) InEffect() bool {
	return w != nil && w.Active && w.Remaining > 0
}
