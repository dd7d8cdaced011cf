package tui

import (
	"strings"

	"lightfeedback-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/x/ansi"
)

type feedbackItem struct {
	record model.FeedbackRecord
	// managerView switches the headline between recipient ("to bob") and
	// sender ("from dave" / "Anonymous").
	managerView bool
}

func (i feedbackItem) FilterValue() string {
	if i.managerView {
		return i.record.RecipientName()
	}
	return i.record.SenderName()
}

func (i feedbackItem) counterparty() string {
	if i.managerView {
		name := i.record.RecipientName()
		if name == "" {
			name = "(unknown)"
		}
		return "to " + name
	}
	name := i.record.SenderName()
	if name == "" {
		return "Anonymous"
	}
	return "from " + name
}

func (i feedbackItem) Title() string {
	dot := sentimentStyle(string(i.record.Sentiment)).Render("●")
	parts := []string{dot, i.counterparty()}
	if !i.record.Acknowledged {
		parts = append(parts, styleLabel().Render("unread"))
	}
	if i.record.Anonymous && i.managerView {
		parts = append(parts, styleMuted().Render("anonymous"))
	}
	if i.record.EmployeeComment != nil {
		parts = append(parts, styleMuted().Render("commented"))
	}
	return strings.Join(parts, " ")
}

func (i feedbackItem) Description() string {
	when := ""
	if !i.record.Timestamp.IsZero() {
		when = i.record.Timestamp.Local().Format("02 Jan 2006 15:04")
	}
	excerpt := strings.TrimSpace(i.record.Strengths)
	if excerpt == "" {
		excerpt = strings.TrimSpace(i.record.Improvements)
	}
	excerpt = ansi.Truncate(strings.ReplaceAll(excerpt, "\n", " "), 60, "…")
	if when == "" {
		return excerpt
	}
	return when + "  " + excerpt
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header and status line, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering is handled by the explicit search/read filters, not the
	// list's fuzzy filter; ESC stays "back/cancel".
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("ctrl+c")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
