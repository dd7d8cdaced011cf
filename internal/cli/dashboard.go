package cli

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <manager-username>",
		Short: "Show a manager's sentiment aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			summary, err := client.ManagerSummary(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, summary)
		},
	}
	return cmd
}

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <employee-username>",
		Short: "Show an employee's feedback timeline, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			timeline, err := client.EmployeeTimeline(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, timeline)
		},
	}
	return cmd
}
