package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	labelStyle = lipgloss.NewStyle().Faint(true).Width(8)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

type bannerInfo struct {
	Version string
	URL     string
	Mode    string
	BaseURL string
	LogFile string
}

// printBanner writes the startup banner. It is the only terminal output
// during normal operation; structured logs go to the log file.
func printBanner(w io.Writer, b bannerInfo) {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("todo "+b.Version),
		"",
		row("UI", b.URL),
		row("API", b.BaseURL),
		row("Mode", b.Mode),
		row("Logs", b.LogFile),
	)
	fmt.Fprintln(w, boxStyle.Render(body))
}
