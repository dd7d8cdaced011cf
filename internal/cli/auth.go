package cli

import (
	"strings"

	"lightfeedback-cli/internal/model"
	"lightfeedback-cli/internal/session"

	"github.com/spf13/cobra"
)

// validateCredentials mirrors the client-side required-field rules: username
// and password must be non-empty before any network call; role is required
// only for signup.
func validateCredentials(username, password, role string, signup bool) error {
	if strings.TrimSpace(username) == "" {
		return errRequired("username")
	}
	if password == "" {
		return errRequired("password")
	}
	if signup && strings.TrimSpace(role) == "" {
		return errRequired("role")
	}
	return nil
}

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and print the session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCredentials(app.Username, app.Password, "", false); err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			role, err := client.Login(cmd.Context(), app.Username, app.Password)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := session.Begin(app.Username, role)
			return writeOut(cmd, app, map[string]any{
				"username": id.Username,
				"role":     id.Role,
				"session":  id.ID,
			})
		},
	}
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var roleFlag string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCredentials(app.Username, app.Password, roleFlag, true); err != nil {
				return writeErr(cmd, err)
			}
			role, ok := model.ParseRole(roleFlag)
			if !ok {
				return writeErr(cmd, errRequired("valid role (manager|employee|hr|admin)"))
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := client.Signup(cmd.Context(), app.Username, app.Password, role); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"username": app.Username,
				"role":     role,
			})
		},
	}

	cmd.Flags().StringVar(&roleFlag, "role", "", "Account role (manager|employee|hr|admin)")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
