package tui

import (
	"context"

	"lightfeedback-cli/internal/api"
	"lightfeedback-cli/internal/feedback"
	"lightfeedback-cli/internal/model"
)

// Client is the backend surface the TUI depends on. *api.Client satisfies it;
// tests substitute a scripted fake.
type Client interface {
	feedback.Backend
	Login(ctx context.Context, username, password string) (model.Role, error)
	Signup(ctx context.Context, username, password string, role model.Role) error
	ManagerSummary(ctx context.Context, username string) (model.Summary, error)
}

var _ Client = (*api.Client)(nil)

type view int

const (
	viewLogin view = iota
	viewManager
	viewEmployee
)

type modalKind int

const (
	modalNone modalKind = iota
	// modalCompose is the manager's "new feedback" form.
	modalCompose
	// modalEdit is the manager's form for an existing record.
	modalEdit
	// modalComment is the employee's comment form for an acknowledged record.
	modalComment
)

type loginFocus int

const (
	loginFocusUsername loginFocus = iota
	loginFocusPassword
	loginFocusRole
)

type composeFocus int

const (
	composeFocusEmployee composeFocus = iota
	composeFocusStrengths
	composeFocusImprovements
	composeFocusSentiment
	composeFocusAnonymous
)

// Async results. Every network call runs as a tea.Cmd and reports back with
// one of these; local state changes only when the message arrives, so two
// in-flight operations land in arrival order.

type loginDoneMsg struct {
	username string
	role     model.Role
	err      error
}

type signupDoneMsg struct {
	err error
}

type listLoadedMsg struct {
	err error
}

type summaryLoadedMsg struct {
	summary model.Summary
	err     error
}

type ackDoneMsg struct {
	id  int
	err error
}

type commentDoneMsg struct {
	id  int
	err error
}

type createDoneMsg struct {
	record model.FeedbackRecord
	err    error
}

type updateDoneMsg struct {
	id  int
	err error
}

type statusClearMsg struct{ seq int }
