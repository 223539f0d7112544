package tracker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B0DB43"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#12EAEA"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	hintStyle = lipgloss.NewStyle().
			Faint(true)
)

// formatClock renders a seconds value as "MM:SS".
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}

	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (m watchModel) View() string {
	if m.finished {
		return ""
	}

	s := m.status

	var b strings.Builder

	b.WriteString(titleStyle.Render("▶ " + s.VideoID))
	b.WriteString(
		hintStyle.Render(
			fmt.Sprintf("  🪙 %d  🔥 %d day streak", s.Coins, s.Streak),
		),
	)
	b.WriteString("\n\n")

	if s.FocusDuration > 0 {
		if s.FocusActive {
			b.WriteString(
				focusStyle.Render(
					"⏱ Focus left: "+formatClock(s.FocusRemaining),
				) + "\n",
			)

			elapsed := float64(
				s.FocusDuration-s.FocusRemaining,
			) / float64(s.FocusDuration)

			b.WriteString(m.progress.ViewAs(elapsed) + "\n\n")
		} else {
			b.WriteString(hintStyle.Render("⏱ Focus window complete") + "\n\n")
		}
	}

	state := "⏸ paused"
	if s.IsPlaying {
		state = "▶ playing"
	}

	b.WriteString(fmt.Sprintf(
		"%s  at %s\n",
		state,
		formatClock(int(s.CurrentTime)),
	))
	b.WriteString(fmt.Sprintf(
		"Session watched: %s\n",
		timeutil.FormatSeconds(int(s.PlayedSeconds)),
	))
	b.WriteString(fmt.Sprintf("Tab switches: %d\n", s.TabSwitches))

	if s.LastWarning != "" {
		b.WriteString("\n" + warnStyle.Render("⚠ "+s.LastWarning) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render(
		"space play/pause · ←/→ seek · s stop & save · q quit",
	) + "\n")

	return b.String()
}
