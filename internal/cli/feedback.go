package cli

import (
	"strconv"
	"strings"

	"lightfeedback-cli/internal/api"
	"lightfeedback-cli/internal/model"

	"github.com/spf13/cobra"
)

func parseFeedbackID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, errRequired("numeric feedback id")
	}
	return id, nil
}

func parseSentiment(s string) (model.Sentiment, error) {
	sentiment := model.Sentiment(strings.ToLower(strings.TrimSpace(s)))
	if !sentiment.Valid() {
		return "", errRequired("sentiment (positive|neutral|negative)")
	}
	return sentiment, nil
}

func newListCmd(app *App) *cobra.Command {
	var acknowledged string
	var sortOrder string
	var manager string

	cmd := &cobra.Command{
		Use:   "list <username>",
		Short: "List feedback addressed to or from a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			opts := api.ListOptions{
				SortAscending: sortOrder == "asc",
				Manager:       manager,
			}
			switch acknowledged {
			case "":
			case "true", "false":
				v := acknowledged == "true"
				opts.Acknowledged = &v
			default:
				return writeErr(cmd, errRequired("acknowledged=true|false"))
			}

			records, err := client.ListFeedback(cmd.Context(), args[0], opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": records})
		},
	}

	cmd.Flags().StringVar(&acknowledged, "acknowledged", "", "Keep only read (true) or unread (false) records")
	cmd.Flags().StringVar(&sortOrder, "sort", "desc", "Timestamp order (asc|desc)")
	cmd.Flags().StringVar(&manager, "manager", "", "Restrict an employee's list to one manager")
	return cmd
}

func newSendCmd(app *App) *cobra.Command {
	var draft model.FeedbackDraft
	var sentiment string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit new feedback to an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseSentiment(sentiment)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft.Sentiment = s
			if draft.ManagerUsername == "" {
				draft.ManagerUsername = app.Username
			}
			if draft.ManagerUsername == "" {
				return writeErr(cmd, errRequired("--from (or --username)"))
			}
			if draft.EmployeeUsername == "" {
				return writeErr(cmd, errRequired("--to"))
			}

			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := client.CreateFeedback(cmd.Context(), draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"feedback_id": id})
		},
	}

	cmd.Flags().StringVar(&draft.ManagerUsername, "from", "", "Manager username (defaults to --username)")
	cmd.Flags().StringVar(&draft.EmployeeUsername, "to", "", "Employee username")
	cmd.Flags().StringVar(&draft.Strengths, "strengths", "", "Strengths text")
	cmd.Flags().StringVar(&draft.Improvements, "improvements", "", "Improvements text")
	cmd.Flags().StringVar(&sentiment, "sentiment", string(model.SentimentPositive), "Sentiment (positive|neutral|negative)")
	cmd.Flags().BoolVar(&draft.Anonymous, "anonymous", false, "Withhold the sender from the recipient")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var draft model.FeedbackDraft
	var sentiment string

	cmd := &cobra.Command{
		Use:   "edit <feedback-id>",
		Short: "Replace the editable fields of an existing record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFeedbackID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := parseSentiment(sentiment)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft.Sentiment = s
			if draft.ManagerUsername == "" {
				draft.ManagerUsername = app.Username
			}
			if draft.ManagerUsername == "" {
				return writeErr(cmd, errRequired("--from (or --username)"))
			}

			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UpdateFeedback(cmd.Context(), id, draft); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"feedback_id": id})
		},
	}

	cmd.Flags().StringVar(&draft.ManagerUsername, "from", "", "Manager username (defaults to --username)")
	cmd.Flags().StringVar(&draft.EmployeeUsername, "to", "", "Employee username")
	cmd.Flags().StringVar(&draft.Strengths, "strengths", "", "Strengths text")
	cmd.Flags().StringVar(&draft.Improvements, "improvements", "", "Improvements text")
	cmd.Flags().StringVar(&sentiment, "sentiment", string(model.SentimentPositive), "Sentiment (positive|neutral|negative)")
	cmd.Flags().BoolVar(&draft.Anonymous, "anonymous", false, "Withhold the sender from the recipient")
	return cmd
}

func newAckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack <feedback-id>",
		Short: "Acknowledge (mark as read) a feedback record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFeedbackID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.Acknowledge(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"feedback_id": id, "acknowledged": true})
		},
	}
	return cmd
}

func newCommentCmd(app *App) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "comment <feedback-id>",
		Short: "Attach the employee's comment to an acknowledged record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFeedbackID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(body) == "" {
				return writeErr(cmd, errRequired("--body"))
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.SetComment(cmd.Context(), id, body); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"feedback_id": id, "comment": body})
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment body")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}
