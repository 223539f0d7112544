package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/player"
)

// Controller exposes the playback controls a source may support. The
// simulated source implements all of them; sources without controls can
// pass nil and remain view-only.
type Controller interface {
	Play()
	Pause()
	Seek(position float64)
}

type keymap struct {
	togglePlay key.Binding
	seekBack   key.Binding
	seekFwd    key.Binding
	stop       key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	seekBack: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "seek -10s"),
	),
	seekFwd: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "seek +10s"),
	),
	stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop & save"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "stop & save"),
	),
}

type tickMsg time.Time

type sessionDoneMsg struct {
	sess *models.WatchSession
	err  error
}

type watchModel struct {
	tracker  *Tracker
	ctrl     Controller
	progress progress.Model
	status   Status
	playing  bool
	done     <-chan sessionDoneMsg
	result   sessionDoneMsg
	finished bool
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForDone(done <-chan sessionDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(tick(), waitForDone(m.done))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.status = m.tracker.Snapshot()
		m.playing = m.status.IsPlaying

		slog.Debug(spew.Sdump(m.status))

		return m, tick()

	case sessionDoneMsg:
		m.result = msg
		m.finished = true

		return m, tea.Quit

	case tea.BlurMsg:
		// leaving the terminal during playback is a tab switch
		m.tracker.ReportVisibility(Hidden)

		return m, nil

	case tea.FocusMsg:
		m.tracker.ReportVisibility(Visible)

		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.togglePlay):
			if m.ctrl != nil {
				if m.playing {
					m.ctrl.Pause()
				} else {
					m.ctrl.Play()
				}
			}

		case key.Matches(msg, defaultKeymap.seekBack):
			if m.ctrl != nil {
				m.ctrl.Seek(m.status.CurrentTime - 10)
			}

		case key.Matches(msg, defaultKeymap.seekFwd):
			if m.ctrl != nil {
				m.ctrl.Seek(m.status.CurrentTime + 10)
			}

		case key.Matches(msg, defaultKeymap.stop),
			key.Matches(msg, defaultKeymap.quit):
			m.tracker.Stop()
		}

		return m, nil
	}

	return m, nil
}

// RunUI drives the watch session under a terminal UI. It blocks until
// the session is finalized and returns the saved session, if any.
func RunUI(
	ctx context.Context,
	tr *Tracker,
	src player.Source,
	ctrl Controller,
) (*models.WatchSession, error) {
	done := make(chan sessionDoneMsg, 1)

	go func() {
		sess, err := tr.Run(ctx)
		done <- sessionDoneMsg{sess: sess, err: err}
	}()

	m := watchModel{
		tracker:  tr,
		ctrl:     ctrl,
		progress: progress.New(progress.WithDefaultGradient()),
		done:     done,
	}

	p := tea.NewProgram(m, tea.WithReportFocus())

	finalModel, err := p.Run()
	if err != nil {
		// the UI failing must not leak the session: stop and wait
		tr.Stop()
		res := <-done

		return res.sess, err
	}

	res := finalModel.(watchModel).result
	if !finalModel.(watchModel).finished {
		tr.Stop()
		res = <-done
	}

	return res.sess, res.err
}
