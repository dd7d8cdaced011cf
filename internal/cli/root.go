package cli

import (
	"fmt"
	"os"
	"strings"

	"lightfeedback-cli/internal/api"
	"lightfeedback-cli/internal/format"
	"lightfeedback-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ServerURL  string
	Username   string
	Password   string
	DebugLog   string
	PrettyJSON bool

	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "lightfeedback",
		Short:        "Terminal client for the employee feedback service",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI (prompts for login)
  lightfeedback

  # Scriptable commands
  lightfeedback list alice
  lightfeedback send --from dave --to bob --strengths "Great work" --sentiment positive
  lightfeedback ack 42
  lightfeedback summary dave
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", envOr("LIGHTFEEDBACK_SERVER", "http://localhost:8000"), "Backend base URL")
	cmd.PersistentFlags().StringVar(&app.Username, "username", envOr("LIGHTFEEDBACK_USERNAME", ""), "Username (login/acting user)")
	cmd.PersistentFlags().StringVar(&app.Password, "password", envOr("LIGHTFEEDBACK_PASSWORD", ""), "Password (prefer the env var over the flag)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("LIGHTFEEDBACK_DEBUG_LOG", ""), "Write structured debug logs to this file")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSendCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newAckCmd(app))
	cmd.AddCommand(newCommentCmd(app))
	cmd.AddCommand(newSummaryCmd(app))
	cmd.AddCommand(newTimelineCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := newClient(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Config{
		Client:   client,
		Username: app.Username,
		Password: app.Password,
		Logger:   app.debugLogger(),
	})
}

// newClient builds the API client shared by every command.
func newClient(app *App) (*api.Client, error) {
	return api.NewClient(api.ClientConfig{
		ServerURL: app.ServerURL,
		Logger:    app.debugLogger(),
	})
}

// debugLogger returns a file-backed zap logger when --debug-log is set, a nop
// logger otherwise. The TUI owns the terminal, so logs never go to stderr.
func (app *App) debugLogger() *zap.Logger {
	if app.logger != nil {
		return app.logger
	}
	if strings.TrimSpace(app.DebugLog) == "" {
		app.logger = zap.NewNop()
		return app.logger
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	config.OutputPaths = []string{app.DebugLog}
	config.ErrorOutputPaths = []string{app.DebugLog}
	logger, err := config.Build()
	if err != nil {
		app.logger = zap.NewNop()
		return app.logger
	}
	app.logger = logger
	return app.logger
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
