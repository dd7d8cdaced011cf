package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor pairs and "faint" styling is applied
// only on dark backgrounds (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue
	colorError  lipgloss.TerminalColor = ac("160", "203")

	// Sentiment colors follow the web client's traffic-light coding.
	colorPositive lipgloss.TerminalColor = ac("28", "42")   // green
	colorNeutral  lipgloss.TerminalColor = ac("244", "247") // gray
	colorNegative lipgloss.TerminalColor = ac("160", "203") // red

	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func sentimentStyle(s string) lipgloss.Style {
	switch s {
	case "positive":
		return lipgloss.NewStyle().Foreground(colorPositive)
	case "negative":
		return lipgloss.NewStyle().Foreground(colorNegative)
	default:
		return lipgloss.NewStyle().Foreground(colorNeutral)
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile before the
// program starts.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is useful
// for non-interactive output but can accidentally disable colors in a TUI.
// Here we only honor NO_COLOR and otherwise follow the terminal's
// capabilities, trusting COLORTERM when the detector under-reports.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	}
	lipgloss.SetColorProfile(profile)
}

func modalFrame() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		Padding(1, 2)
}
