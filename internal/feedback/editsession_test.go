package feedback

import (
	"testing"

	"lightfeedback-cli/internal/model"
)

func TestComposeDefaults(t *testing.T) {
	var s EditSession
	if s.Open() {
		t.Fatal("zero session must be closed")
	}

	s.OpenCompose("dave")
	if s.Phase() != PhaseComposing {
		t.Fatalf("expected composing phase, got %v", s.Phase())
	}
	if _, ok := s.Target(); ok {
		t.Error("compose session has no target record")
	}
	if s.Draft.ManagerUsername != "dave" || s.Draft.Sentiment != model.SentimentPositive {
		t.Errorf("unexpected compose defaults: %+v", s.Draft)
	}
}

func TestOpenEditSeedsDraftFromRecord(t *testing.T) {
	rec := record(7, "dave", false)
	rec.To = strptr("bob")
	rec.Sentiment = model.SentimentNegative
	rec.Anonymous = true

	var s EditSession
	s.OpenEdit(rec, "dave")

	if !s.Editing(7) {
		t.Fatal("expected session to be editing record 7")
	}
	d := s.Draft
	if d.EmployeeUsername != "bob" || d.Strengths != "s" || d.Improvements != "i" ||
		d.Sentiment != model.SentimentNegative || !d.Anonymous {
		t.Errorf("draft not seeded from record: %+v", d)
	}
}

func TestOpenDiscardsPreviousDraft(t *testing.T) {
	recA := record(7, "dave", false)
	recB := record(9, "dave", false)
	recB.Strengths = "other"

	var s EditSession
	s.OpenEdit(recA, "dave")
	s.Draft.Strengths = "unsaved work on 7"

	s.OpenEdit(recB, "dave")
	if !s.Editing(9) || s.Editing(7) {
		t.Fatal("expected the session to have switched to record 9")
	}
	if s.Draft.Strengths != "other" {
		t.Errorf("previous unsaved draft leaked into the new session: %+v", s.Draft)
	}

	// Switching to compose also discards.
	s.OpenCompose("dave")
	if s.Phase() != PhaseComposing || s.Draft.Strengths != "" {
		t.Errorf("compose after edit kept stale draft: %+v", s.Draft)
	}
}

func TestCloseClearsEverything(t *testing.T) {
	var s EditSession
	s.OpenEdit(record(7, "dave", false), "dave")
	s.Close()

	if s.Open() {
		t.Fatal("expected closed session")
	}
	if s.Draft != (model.FeedbackDraft{}) {
		t.Errorf("expected empty draft after close, got %+v", s.Draft)
	}
	if _, ok := s.Target(); ok {
		t.Error("closed session must have no target")
	}
}
