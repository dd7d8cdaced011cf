package feedback

import "lightfeedback-cli/internal/model"

// EditPhase is the tagged state of the single edit slot. At most one form is
// open at a time; the phase makes the discard-on-switch rule an explicit
// transition instead of a side effect of stray flags.
type EditPhase int

const (
	PhaseClosed EditPhase = iota
	// PhaseComposing is the "new feedback" form.
	PhaseComposing
	// PhaseEditing is the form for an existing record, identified by target id.
	PhaseEditing
)

// EditSession holds one in-progress draft. Opening a new session while one is
// open silently discards the previous draft (last writer wins, acceptable in
// a single-user client). A successful save or an explicit cancel closes it;
// a failed save leaves it open with the draft intact.
type EditSession struct {
	phase    EditPhase
	targetID int

	Draft model.FeedbackDraft
}

func (s *EditSession) Phase() EditPhase { return s.phase }

func (s *EditSession) Open() bool { return s.phase != PhaseClosed }

// Target returns the record id being edited. The second return is false
// unless the session is in PhaseEditing.
func (s *EditSession) Target() (int, bool) {
	if s.phase != PhaseEditing {
		return 0, false
	}
	return s.targetID, true
}

// Editing reports whether this session is an open edit of the given record.
func (s *EditSession) Editing(feedbackID int) bool {
	return s.phase == PhaseEditing && s.targetID == feedbackID
}

// OpenCompose starts a new-feedback draft, discarding any open session.
func (s *EditSession) OpenCompose(managerUsername string) {
	s.phase = PhaseComposing
	s.targetID = 0
	s.Draft = model.FeedbackDraft{
		ManagerUsername: managerUsername,
		Sentiment:       model.SentimentPositive,
	}
}

// OpenEdit starts an edit draft seeded from the record's current fields,
// discarding any open session. The cache is not touched.
func (s *EditSession) OpenEdit(record model.FeedbackRecord, managerUsername string) {
	s.phase = PhaseEditing
	s.targetID = record.ID
	s.Draft = model.FeedbackDraft{
		ManagerUsername:  managerUsername,
		EmployeeUsername: record.RecipientName(),
		Strengths:        record.Strengths,
		Improvements:     record.Improvements,
		Sentiment:        record.Sentiment,
		Anonymous:        record.Anonymous,
	}
}

// Close discards the draft and returns the session to the closed phase.
func (s *EditSession) Close() {
	*s = EditSession{}
}
