package tui

import (
	"strconv"
	"strings"

	"lightfeedback-cli/internal/model"
	"lightfeedback-cli/internal/perm"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.modal != modalNone {
		return m.viewModal()
	}
	switch m.view {
	case viewLogin:
		return m.viewLogin()
	case viewManager, viewEmployee:
		return m.viewDashboard()
	}
	return ""
}

func (m appModel) centered(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func focusMarker(focused bool) string {
	if focused {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("> ")
	}
	return "  "
}

func (m appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Feedback Login / Signup"))
	b.WriteString("\n\n")

	b.WriteString(focusMarker(m.loginFocus == loginFocusUsername))
	b.WriteString(m.usernameInput.View())
	b.WriteString("\n")
	b.WriteString(focusMarker(m.loginFocus == loginFocusPassword))
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")

	role := "none (signup only)"
	if m.roleIdx >= 0 {
		role = string(signupRoles[m.roleIdx])
	}
	b.WriteString(focusMarker(m.loginFocus == loginFocusRole))
	b.WriteString("Role: ")
	b.WriteString(styleLabel().Render(role))
	if m.loginFocus == loginFocusRole {
		b.WriteString(styleMuted().Render("  (←/→ to change)"))
	}
	b.WriteString("\n\n")

	if m.authInFlight {
		b.WriteString(m.spinner.View())
		b.WriteString(styleMuted().Render(" contacting backend..."))
		b.WriteString("\n")
	} else if m.loginErr != "" {
		b.WriteString(styleError().Render(m.loginErr))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter login · ctrl+s sign up · tab next field · ctrl+c quit"))

	return m.centered(modalFrame().Render(b.String()))
}

func (m appModel) headerLine() string {
	left := styleTitle().Render("Feedback System")
	who := "Logged in as: " + m.identity.Username + " (" + string(m.identity.Role) + ")"
	if m.inFlight > 0 {
		who = m.spinner.View() + " " + who
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + styleMuted().Render(who)
}

func (m appModel) summaryLine() string {
	if m.summary == nil {
		return styleMuted().Render("Team overview loading...")
	}
	s := *m.summary
	parts := []string{
		styleLabel().Render("Team overview:"),
		"total " + strconv.Itoa(s.TotalFeedbacks),
		sentimentStyle(string(model.SentimentPositive)).Render("positive " + strconv.Itoa(s.Count(model.SentimentPositive))),
		sentimentStyle(string(model.SentimentNeutral)).Render("neutral " + strconv.Itoa(s.Count(model.SentimentNeutral))),
		sentimentStyle(string(model.SentimentNegative)).Render("negative " + strconv.Itoa(s.Count(model.SentimentNegative))),
	}
	return strings.Join(parts, "  ")
}

func (m appModel) filterLine() string {
	search := m.searchInput.View()
	if !m.searching && strings.TrimSpace(m.searchInput.Value()) == "" {
		search = styleMuted().Render("/ search")
	}
	return styleLabel().Render("Filter: ") + string(m.filter.Read) + "  " + search
}

func (m appModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return styleMuted().Render(m.status)
}

func (m appModel) detailPane(width int) string {
	record, ok := m.selectedRecord()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleLabel().Render("Strengths: "))
	b.WriteString("\n")
	b.WriteString(renderMarkdown(record.Strengths, width))
	b.WriteString("\n")
	b.WriteString(styleLabel().Render("Improvements: "))
	b.WriteString("\n")
	b.WriteString(renderMarkdown(record.Improvements, width))
	b.WriteString("\n")
	b.WriteString(styleLabel().Render("Sentiment: "))
	b.WriteString(sentimentStyle(string(record.Sentiment)).Render(string(record.Sentiment)))
	if record.EmployeeComment != nil {
		b.WriteString("\n")
		b.WriteString(styleLabel().Render("Comment: "))
		b.WriteString(strings.TrimSpace(*record.EmployeeComment))
	}
	return b.String()
}

func (m appModel) helpLine() string {
	switch m.view {
	case viewManager:
		return styleMuted().Render("n new · e edit · r reload · ctrl+l logout · q quit")
	case viewEmployee:
		return styleMuted().Render("a mark read · c comment · f filter · / search · r reload · ctrl+l logout · q quit")
	}
	return ""
}

func (m appModel) viewDashboard() string {
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	if m.view == viewManager {
		if perm.CanViewSummary(m.identity) {
			b.WriteString(m.summaryLine())
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.filterLine())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.feedbackList.Items()) == 0 {
		if m.view == viewManager {
			b.WriteString(styleMuted().Render("No feedback submitted yet."))
		} else {
			b.WriteString(styleMuted().Render("No feedbacks match this filter."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.feedbackList.View())
		b.WriteString("\n")
		detailWidth := m.width - 4
		if detailWidth > 80 {
			detailWidth = 80
		}
		if d := m.detailPane(detailWidth); d != "" {
			b.WriteString("\n")
			b.WriteString(d)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if s := m.renderStatus(); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalCompose, modalEdit:
		return m.viewComposeModal()
	case modalComment:
		return m.viewCommentModal()
	}
	return ""
}

func (m appModel) viewComposeModal() string {
	title := "Submit Feedback"
	if _, editing := m.edit.Target(); editing {
		title = "Edit Feedback"
	}

	var b strings.Builder
	b.WriteString(styleTitle().Render(title))
	b.WriteString("\n\n")
	b.WriteString(focusMarker(m.composeFocus == composeFocusEmployee))
	b.WriteString(m.employeeInput.View())
	b.WriteString("\n")
	b.WriteString(focusMarker(m.composeFocus == composeFocusStrengths))
	b.WriteString(m.strengthsArea.View())
	b.WriteString("\n")
	b.WriteString(focusMarker(m.composeFocus == composeFocusImprovements))
	b.WriteString(m.improvementsArea.View())
	b.WriteString("\n")

	b.WriteString(focusMarker(m.composeFocus == composeFocusSentiment))
	b.WriteString("Sentiment: ")
	b.WriteString(sentimentStyle(string(sentiments[m.sentimentIdx])).Render(string(sentiments[m.sentimentIdx])))
	if m.composeFocus == composeFocusSentiment {
		b.WriteString(styleMuted().Render("  (←/→ to change)"))
	}
	b.WriteString("\n")

	checkbox := "[ ]"
	if m.anonymousFlag {
		checkbox = "[x]"
	}
	b.WriteString(focusMarker(m.composeFocus == composeFocusAnonymous))
	b.WriteString(checkbox + " Submit anonymously")
	b.WriteString("\n\n")

	if m.modalErr != "" {
		b.WriteString(styleError().Render(m.modalErr))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render("ctrl+s save · tab next field · esc cancel"))
	return m.centered(modalFrame().Render(b.String()))
}

func (m appModel) viewCommentModal() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Add Comment"))
	b.WriteString("\n\n")
	b.WriteString(m.commentArea.View())
	b.WriteString("\n\n")
	if m.modalErr != "" {
		b.WriteString(styleError().Render(m.modalErr))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render("ctrl+s submit · esc cancel"))
	return m.centered(modalFrame().Render(b.String()))
}
