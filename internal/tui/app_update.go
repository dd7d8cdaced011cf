package tui

import (
	"strings"

	"lightfeedback-cli/internal/api"
	"lightfeedback-cli/internal/model"
	"lightfeedback-cli/internal/perm"
	"lightfeedback-cli/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var sentiments = []model.Sentiment{model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case loginDoneMsg:
		return m.applyLoginDone(msg)

	case signupDoneMsg:
		m.inFlight--
		m.authInFlight = false
		if msg.err != nil {
			m.loginErr = api.UserMessage(msg.err)
			return m, nil
		}
		m.loginErr = ""
		m.passwordInput.SetValue("")
		return m, m.showStatus("Signup successful! You can now log in.", false)

	case listLoadedMsg:
		m.inFlight--
		// A failed load is silent: the cache is empty and the dashboard just
		// shows no records (already logged by the cache).
		m.refreshList()
		return m, nil

	case summaryLoadedMsg:
		m.inFlight--
		if msg.err != nil {
			m.logger.Warn("summary load failed", zap.Error(msg.err))
			return m, nil
		}
		summary := msg.summary
		m.summary = &summary
		return m, nil

	case ackDoneMsg:
		m.inFlight--
		if msg.err != nil {
			status := m.showStatus("Could not acknowledge feedback: "+api.UserMessage(msg.err), true)
			if api.IsNotFound(msg.err) {
				// The record is gone server-side; reload to drop it locally.
				mm, reload := m.reload()
				return mm, tea.Batch(status, reload)
			}
			return m, status
		}
		m.refreshList()
		return m, m.showStatus("Marked as read", false)

	case commentDoneMsg:
		m.inFlight--
		if msg.err != nil {
			// Draft stays in commentDrafts so the user can retry.
			if m.modal == modalComment && m.commentForID == msg.id {
				m.modalErr = api.UserMessage(msg.err)
				return m, nil
			}
			return m, m.showStatus("Could not submit comment: "+api.UserMessage(msg.err), true)
		}
		delete(m.commentDrafts, msg.id)
		if m.modal == modalComment && m.commentForID == msg.id {
			m.closeModal()
		}
		m.refreshList()
		return m, m.showStatus("Comment submitted!", false)

	case createDoneMsg:
		m.inFlight--
		if msg.err != nil {
			// The edit session stays open with the draft intact.
			m.modalErr = api.UserMessage(msg.err)
			return m, nil
		}
		m.edit.Close()
		m.closeModal()
		m.refreshList()
		return m, m.showStatus("Feedback submitted", false)

	case updateDoneMsg:
		m.inFlight--
		if msg.err != nil {
			m.modalErr = api.UserMessage(msg.err)
			return m, nil
		}
		m.edit.Close()
		m.closeModal()
		m.refreshList()
		return m, m.showStatus("Feedback updated", false)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m appModel) applyLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.inFlight--
	m.authInFlight = false
	if msg.err != nil {
		m.loginErr = api.UserMessage(msg.err)
		return m, nil
	}

	// Exhaustive role dispatch: unknown or dashboard-less roles are reported,
	// never fatal.
	switch msg.role {
	case model.RoleManager:
		m.identity = session.Begin(msg.username, msg.role)
		m.view = viewManager
		m.loginErr = ""
		m.inFlight += 2
		return m, tea.Batch(
			loadFeedbackCmd(m.cache, m.identity.Username, false),
			loadSummaryCmd(m.client, m.identity.Username),
			m.spinner.Tick,
		)
	case model.RoleEmployee:
		m.identity = session.Begin(msg.username, msg.role)
		m.view = viewEmployee
		m.loginErr = ""
		m.inFlight++
		return m, tea.Batch(
			loadFeedbackCmd(m.cache, m.identity.Username, true),
			m.spinner.Tick,
		)
	case model.RoleHR, model.RoleAdmin:
		m.loginErr = "No " + string(msg.role) + " dashboard in this client"
		return m, nil
	default:
		m.loginErr = "Unknown role: " + string(msg.role)
		return m, nil
	}
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.updateModalKeys(msg)
	}
	if m.view == viewLogin {
		return m.updateLoginKeys(msg)
	}
	return m.updateDashboardKeys(msg)
}

func (m appModel) updateLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The triggering controls are disabled while a login/signup request is
	// outstanding; dropping the keys prevents duplicate submission.
	if m.authInFlight {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.setLoginFocus((m.loginFocus + 1) % 3)
		return m, nil
	case "shift+tab", "up":
		m.setLoginFocus((m.loginFocus + 2) % 3)
		return m, nil
	case "left", "right":
		if m.loginFocus == loginFocusRole {
			if msg.String() == "right" {
				m.roleIdx++
			} else {
				m.roleIdx--
			}
			// -1 is "no role selected"; only signup requires one.
			if m.roleIdx < -1 {
				m.roleIdx = len(signupRoles) - 1
			}
			if m.roleIdx >= len(signupRoles) {
				m.roleIdx = -1
			}
			return m, nil
		}
	case "enter":
		return m.submitLogin()
	case "ctrl+s":
		return m.submitSignup()
	}

	var cmd tea.Cmd
	switch m.loginFocus {
	case loginFocusUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case loginFocusPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *appModel) setLoginFocus(f loginFocus) {
	m.loginFocus = f
	m.usernameInput.Blur()
	m.passwordInput.Blur()
	switch f {
	case loginFocusUsername:
		m.usernameInput.Focus()
	case loginFocusPassword:
		m.passwordInput.Focus()
	}
}

// validateCredentials applies the client-side required-field checks before
// any network call.
func (m *appModel) validateCredentials(signup bool) bool {
	if strings.TrimSpace(m.usernameInput.Value()) == "" {
		m.loginErr = "Username is required"
		return false
	}
	if m.passwordInput.Value() == "" {
		m.loginErr = "Password is required"
		return false
	}
	if signup && m.roleIdx < 0 {
		m.loginErr = "Please select a role"
		return false
	}
	m.loginErr = ""
	return true
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd) {
	if !m.validateCredentials(false) {
		return m, nil
	}
	m.authInFlight = true
	m.inFlight++
	return m, tea.Batch(
		loginCmd(m.client, strings.TrimSpace(m.usernameInput.Value()), m.passwordInput.Value()),
		m.spinner.Tick,
	)
}

func (m appModel) submitSignup() (tea.Model, tea.Cmd) {
	if !m.validateCredentials(true) {
		return m, nil
	}
	m.authInFlight = true
	m.inFlight++
	return m, tea.Batch(
		signupCmd(m.client, strings.TrimSpace(m.usernameInput.Value()), m.passwordInput.Value(), signupRoles[m.roleIdx]),
		m.spinner.Tick,
	)
}

func (m appModel) updateDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search capture mode: keys edit the search input; the view re-derives on
	// every keystroke.
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.filter.Search = m.searchInput.Value()
			m.refreshList()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "ctrl+l":
		m.logout()
		return m, nil
	case "r":
		return m.reload()
	}

	switch m.view {
	case viewManager:
		switch msg.String() {
		case "n":
			if perm.CanSubmitFeedback(m.identity) {
				m.openComposeModal()
			}
			return m, nil
		case "e", "enter":
			if record, ok := m.selectedRecord(); ok {
				if !perm.CanEditFeedback(m.identity, record) {
					return m, m.showStatus("Only the sender can edit this feedback", true)
				}
				m.openEditModal(record)
			}
			return m, nil
		}
	case viewEmployee:
		switch msg.String() {
		case "a":
			if record, ok := m.selectedRecord(); ok && perm.CanAcknowledge(m.identity, record) {
				m.inFlight++
				return m, tea.Batch(ackCmd(m.cache, record.ID), m.spinner.Tick)
			}
			return m, nil
		case "c", "enter":
			if record, ok := m.selectedRecord(); ok {
				if !perm.CanComment(m.identity, record) {
					return m, m.showStatus("Mark the feedback as read before commenting", true)
				}
				m.openCommentModal(record)
			}
			return m, nil
		case "f":
			m.filter.Read = m.filter.Read.Next()
			m.refreshList()
			return m, nil
		case "/":
			m.searching = true
			return m, m.searchInput.Focus()
		}
	}

	var cmd tea.Cmd
	m.feedbackList, cmd = m.feedbackList.Update(msg)
	return m, cmd
}

func (m appModel) reload() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewManager:
		m.inFlight += 2
		return m, tea.Batch(
			loadFeedbackCmd(m.cache, m.identity.Username, false),
			loadSummaryCmd(m.client, m.identity.Username),
			m.spinner.Tick,
		)
	case viewEmployee:
		m.inFlight++
		return m, tea.Batch(
			loadFeedbackCmd(m.cache, m.identity.Username, true),
			m.spinner.Tick,
		)
	}
	return m, nil
}

func (m *appModel) openComposeModal() {
	m.edit.OpenCompose(m.identity.Username)
	m.modal = modalCompose
	m.seedComposeInputs()
}

func (m *appModel) openEditModal(record model.FeedbackRecord) {
	m.edit.OpenEdit(record, m.identity.Username)
	m.modal = modalEdit
	m.seedComposeInputs()
}

func (m *appModel) seedComposeInputs() {
	draft := m.edit.Draft
	m.modalErr = ""
	m.employeeInput.SetValue(draft.EmployeeUsername)
	m.strengthsArea.SetValue(draft.Strengths)
	m.improvementsArea.SetValue(draft.Improvements)
	m.sentimentIdx = 0
	for i, s := range sentiments {
		if s == draft.Sentiment {
			m.sentimentIdx = i
		}
	}
	m.anonymousFlag = draft.Anonymous
	m.setComposeFocus(composeFocusEmployee)
}

func (m *appModel) openCommentModal(record model.FeedbackRecord) {
	m.modal = modalComment
	m.modalErr = ""
	m.commentForID = record.ID
	m.commentArea.SetValue(m.commentDrafts[record.ID])
	m.commentArea.Focus()
}

func (m *appModel) setComposeFocus(f composeFocus) {
	m.composeFocus = f
	m.employeeInput.Blur()
	m.strengthsArea.Blur()
	m.improvementsArea.Blur()
	switch f {
	case composeFocusEmployee:
		m.employeeInput.Focus()
	case composeFocusStrengths:
		m.strengthsArea.Focus()
	case composeFocusImprovements:
		m.improvementsArea.Focus()
	}
}

func (m appModel) updateModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalCompose, modalEdit:
		return m.updateComposeKeys(msg)
	case modalComment:
		return m.updateCommentKeys(msg)
	}
	return m, nil
}

func (m appModel) updateComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.edit.Close()
		m.closeModal()
		return m, nil
	case "tab":
		m.setComposeFocus((m.composeFocus + 1) % 5)
		return m, nil
	case "shift+tab":
		m.setComposeFocus((m.composeFocus + 4) % 5)
		return m, nil
	case "ctrl+s":
		return m.submitCompose()
	}

	switch m.composeFocus {
	case composeFocusSentiment:
		switch msg.String() {
		case "left":
			m.sentimentIdx = (m.sentimentIdx + len(sentiments) - 1) % len(sentiments)
		case "right", " ":
			m.sentimentIdx = (m.sentimentIdx + 1) % len(sentiments)
		}
		return m, nil
	case composeFocusAnonymous:
		if msg.String() == " " || msg.String() == "enter" {
			m.anonymousFlag = !m.anonymousFlag
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.composeFocus {
	case composeFocusEmployee:
		m.employeeInput, cmd = m.employeeInput.Update(msg)
	case composeFocusStrengths:
		m.strengthsArea, cmd = m.strengthsArea.Update(msg)
	case composeFocusImprovements:
		m.improvementsArea, cmd = m.improvementsArea.Update(msg)
	}
	return m, cmd
}

// submitCompose sends the draft as-is: the client performs no field-level
// validation beyond what the backend enforces, and a rejection keeps the
// session open with the backend's message shown.
func (m appModel) submitCompose() (tea.Model, tea.Cmd) {
	draft := m.edit.Draft
	draft.EmployeeUsername = strings.TrimSpace(m.employeeInput.Value())
	draft.Strengths = m.strengthsArea.Value()
	draft.Improvements = m.improvementsArea.Value()
	draft.Sentiment = sentiments[m.sentimentIdx]
	draft.Anonymous = m.anonymousFlag
	m.edit.Draft = draft

	m.inFlight++
	if id, ok := m.edit.Target(); ok {
		return m, tea.Batch(updateCmd(m.cache, id, draft), m.spinner.Tick)
	}
	return m, tea.Batch(createCmd(m.cache, draft), m.spinner.Tick)
}

func (m appModel) updateCommentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Keep the draft for this record so reopening the modal restores it.
		m.commentDrafts[m.commentForID] = m.commentArea.Value()
		m.closeModal()
		return m, nil
	case "ctrl+s":
		text := m.commentArea.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.commentDrafts[m.commentForID] = text
		m.inFlight++
		return m, tea.Batch(commentCmd(m.cache, m.commentForID, text), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.commentArea, cmd = m.commentArea.Update(msg)
	m.commentDrafts[m.commentForID] = m.commentArea.Value()
	return m, cmd
}
