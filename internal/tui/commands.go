package tui

import (
	"context"

	"lightfeedback-cli/internal/feedback"
	"lightfeedback-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Network commands. Each closure captures what it needs by value and performs
// exactly one backend operation; the result message is applied on the UI loop.
// Requests are never cancelled or timed out client-side, matching the web
// client's reliance on transport defaults.

func loginCmd(client Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		role, err := client.Login(context.Background(), username, password)
		return loginDoneMsg{username: username, role: role, err: err}
	}
}

func signupCmd(client Client, username, password string, role model.Role) tea.Cmd {
	return func() tea.Msg {
		return signupDoneMsg{err: client.Signup(context.Background(), username, password, role)}
	}
}

func loadFeedbackCmd(cache *feedback.Cache, username string, newestFirst bool) tea.Cmd {
	return func() tea.Msg {
		return listLoadedMsg{err: cache.Load(context.Background(), username, newestFirst)}
	}
}

func loadSummaryCmd(client Client, username string) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.ManagerSummary(context.Background(), username)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func ackCmd(cache *feedback.Cache, id int) tea.Cmd {
	return func() tea.Msg {
		return ackDoneMsg{id: id, err: cache.Acknowledge(context.Background(), id)}
	}
}

func commentCmd(cache *feedback.Cache, id int, text string) tea.Cmd {
	return func() tea.Msg {
		return commentDoneMsg{id: id, err: cache.SetComment(context.Background(), id, text)}
	}
}

func createCmd(cache *feedback.Cache, draft model.FeedbackDraft) tea.Cmd {
	return func() tea.Msg {
		record, err := cache.Create(context.Background(), draft)
		return createDoneMsg{record: record, err: err}
	}
}

func updateCmd(cache *feedback.Cache, id int, draft model.FeedbackDraft) tea.Cmd {
	return func() tea.Msg {
		return updateDoneMsg{id: id, err: cache.Update(context.Background(), id, draft)}
	}
}
