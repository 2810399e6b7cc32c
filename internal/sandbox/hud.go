package sandbox

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	hudStatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	hudPausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	hudHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const hudHints = "wasd move · arrows cursor · space spawn · b burst · g gizmos · p pause · r reset · q quit"

// renderHUD formats the status line shown under the canvas, trimmed to the
// terminal width.
func renderHUD(s *State, width int) string {
	stats := hudStatStyle.Render(fmt.Sprintf(
		"bodies %d  collisions %d  tick %d",
		s.World.Len(), s.TickCollisions, s.World.Tick(),
	))
	if s.Paused {
		stats += "  " + hudPausedStyle.Render("PAUSED")
	}

	line := stats + "  " + hudHintStyle.Render(hudHints)
	if lipgloss.Width(line) > width {
		line = stats
	}
	return line
}
