package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Config carries everything the interactive client needs from the CLI layer.
type Config struct {
	Client   Client
	Username string
	Password string
	Logger   *zap.Logger
}

func Run(cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	applyColorProfilePreference()
	m := newAppModel(cfg.Client, logger)
	// Credentials passed on the command line prefill the login form so a
	// single enter keypress signs the user in.
	if u := strings.TrimSpace(cfg.Username); u != "" {
		m.usernameInput.SetValue(u)
		m.passwordInput.SetValue(cfg.Password)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
