package tui

import (
	"time"

	"lightfeedback-cli/internal/feedback"
	"lightfeedback-cli/internal/model"
	"lightfeedback-cli/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// signupRoles is the order the role selector cycles through on the login view.
var signupRoles = []model.Role{model.RoleManager, model.RoleEmployee, model.RoleHR, model.RoleAdmin}

type appModel struct {
	client Client
	logger *zap.Logger

	width  int
	height int

	view  view
	modal modalKind

	identity session.Identity
	cache    *feedback.Cache
	edit     feedback.EditSession
	filter   feedback.FilterState

	// Login form. authInFlight disables the controls while a login or signup
	// request is outstanding; it is the only concurrency guard in the app.
	usernameInput textinput.Model
	passwordInput textinput.Model
	roleIdx       int
	loginFocus    loginFocus
	authInFlight  bool
	loginErr      string

	// Dashboard.
	feedbackList list.Model
	summary      *model.Summary
	searchInput  textinput.Model
	searching    bool

	// Compose/edit modal.
	employeeInput    textinput.Model
	strengthsArea    textarea.Model
	improvementsArea textarea.Model
	sentimentIdx     int
	anonymousFlag    bool
	composeFocus     composeFocus
	modalErr         string

	// Comment modal. Drafts are kept per record so a failed submit can be
	// retried without retyping.
	commentArea   textarea.Model
	commentForID  int
	commentDrafts map[int]string

	spinner   spinner.Model
	inFlight  int
	status    string
	statusErr bool
	statusSeq int
}

func newAppModel(client Client, logger *zap.Logger) appModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := appModel{
		client:        client,
		logger:        logger,
		view:          viewLogin,
		cache:         feedback.NewCache(client, logger),
		filter:        feedback.FilterState{Read: feedback.FilterAll},
		commentDrafts: map[int]string{},
		roleIdx:       -1,
	}

	m.usernameInput = textinput.New()
	m.usernameInput.Prompt = ""
	m.usernameInput.Placeholder = "Username"
	m.usernameInput.CharLimit = 64
	m.usernameInput.Width = 32
	m.usernameInput.Focus()

	m.passwordInput = textinput.New()
	m.passwordInput.Prompt = ""
	m.passwordInput.Placeholder = "Password"
	m.passwordInput.CharLimit = 64
	m.passwordInput.Width = 32
	m.passwordInput.EchoMode = textinput.EchoPassword

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "/"
	m.searchInput.Placeholder = "Search by manager name"
	m.searchInput.CharLimit = 64
	m.searchInput.Width = 32

	m.employeeInput = textinput.New()
	m.employeeInput.Prompt = ""
	m.employeeInput.Placeholder = "Employee username"
	m.employeeInput.CharLimit = 64
	m.employeeInput.Width = 40

	m.strengthsArea = textarea.New()
	m.strengthsArea.Placeholder = "Strengths"
	m.strengthsArea.SetHeight(3)
	m.strengthsArea.SetWidth(56)

	m.improvementsArea = textarea.New()
	m.improvementsArea.Placeholder = "Improvements"
	m.improvementsArea.SetHeight(3)
	m.improvementsArea.SetWidth(56)

	m.commentArea = textarea.New()
	m.commentArea.Placeholder = "Add your comment..."
	m.commentArea.SetHeight(3)
	m.commentArea.SetWidth(56)

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.feedbackList = newList("Feedback", []list.Item{})
	return m
}

func (m appModel) Init() tea.Cmd { return textinput.Blink }

// refreshList rebuilds the visible list from the cache and the current
// filter state. The employee view filters; the manager view shows everything
// in backend order.
func (m *appModel) refreshList() {
	records := m.cache.Records()
	managerView := m.view == viewManager
	if !managerView {
		records = m.filter.Apply(records)
	}
	items := make([]list.Item, 0, len(records))
	for _, r := range records {
		items = append(items, feedbackItem{record: r, managerView: managerView})
	}
	m.feedbackList.SetItems(items)
}

func (m *appModel) selectedRecord() (model.FeedbackRecord, bool) {
	if it, ok := m.feedbackList.SelectedItem().(feedbackItem); ok {
		return it.record, true
	}
	return model.FeedbackRecord{}, false
}

func (m *appModel) showStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func (m *appModel) resizeLists() {
	h := m.height - 9
	if h < 5 {
		h = 5
	}
	w := m.width
	if w > 100 {
		w = 100
	}
	m.feedbackList.SetSize(w, h)
}

// closeModal resets every modal input. Safe to call when no modal is open.
func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalErr = ""
	m.composeFocus = composeFocusEmployee

	m.employeeInput.SetValue("")
	m.employeeInput.Blur()
	m.strengthsArea.SetValue("")
	m.strengthsArea.Blur()
	m.improvementsArea.SetValue("")
	m.improvementsArea.Blur()
	m.sentimentIdx = 0
	m.anonymousFlag = false

	m.commentArea.SetValue("")
	m.commentArea.Blur()
	m.commentForID = 0
}

// logout destroys the session and returns to the login screen. Dashboard
// state is dropped with the session; nothing survives into the next login.
func (m *appModel) logout() {
	m.identity.Destroy()
	m.cache = feedback.NewCache(m.client, m.logger)
	m.edit.Close()
	m.filter = feedback.FilterState{Read: feedback.FilterAll}
	m.summary = nil
	m.searching = false
	m.searchInput.SetValue("")
	m.commentDrafts = map[int]string{}
	m.closeModal()
	m.feedbackList.SetItems(nil)
	m.view = viewLogin
	m.loginFocus = loginFocusUsername
	m.roleIdx = -1
	m.usernameInput.SetValue("")
	m.passwordInput.SetValue("")
	m.usernameInput.Focus()
	m.loginErr = ""
}
