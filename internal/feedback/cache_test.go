package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"lightfeedback-cli/internal/api"
	"lightfeedback-cli/internal/model"
)

// fakeBackend scripts the API surface the cache depends on and records which
// calls were made.
type fakeBackend struct {
	listRecords []model.FeedbackRecord
	listErr     error
	ackErr      error
	commentErr  error
	createID    int
	createErr   error
	updateErr   error

	calls []string
}

func (f *fakeBackend) ListFeedback(ctx context.Context, username string, opts api.ListOptions) ([]model.FeedbackRecord, error) {
	f.calls = append(f.calls, "list")
	return f.listRecords, f.listErr
}

func (f *fakeBackend) Acknowledge(ctx context.Context, feedbackID int) error {
	f.calls = append(f.calls, "ack")
	return f.ackErr
}

func (f *fakeBackend) SetComment(ctx context.Context, feedbackID int, comment string) error {
	f.calls = append(f.calls, "comment")
	return f.commentErr
}

func (f *fakeBackend) CreateFeedback(ctx context.Context, draft model.FeedbackDraft) (int, error) {
	f.calls = append(f.calls, "create")
	return f.createID, f.createErr
}

func (f *fakeBackend) UpdateFeedback(ctx context.Context, feedbackID int, draft model.FeedbackDraft) error {
	f.calls = append(f.calls, "update")
	return f.updateErr
}

func strptr(s string) *string { return &s }

func ts(t *testing.T, value string) model.Timestamp {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return model.NewTimestamp(parsed)
}

func record(id int, sender string, acked bool) model.FeedbackRecord {
	r := model.FeedbackRecord{
		ID:           id,
		Strengths:    "s",
		Improvements: "i",
		Sentiment:    model.SentimentNeutral,
		Acknowledged: acked,
	}
	if sender != "" {
		r.From = strptr(sender)
	}
	return r
}

func TestLoadNewestFirst(t *testing.T) {
	older := record(1, "dave", false)
	older.Timestamp = ts(t, "2026-08-01T10:00:00Z")
	newer := record(2, "dave", false)
	newer.Timestamp = ts(t, "2026-08-02T10:00:00Z")

	backend := &fakeBackend{listRecords: []model.FeedbackRecord{older, newer}}
	cache := NewCache(backend, nil)

	if err := cache.Load(context.Background(), "alice", true); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := cache.Records()
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("expected [T2 T1] order, got %+v", got)
	}
}

func TestLoadPreservesBackendOrderForManagerView(t *testing.T) {
	backend := &fakeBackend{listRecords: []model.FeedbackRecord{
		record(3, "dave", false), record(1, "dave", false), record(2, "dave", false),
	}}
	cache := NewCache(backend, nil)

	if err := cache.Load(context.Background(), "dave", false); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := cache.Records()
	if got[0].ID != 3 || got[1].ID != 1 || got[2].ID != 2 {
		t.Fatalf("expected backend order preserved, got %+v", got)
	}
}

func TestLoadFailureLeavesCacheEmpty(t *testing.T) {
	backend := &fakeBackend{listRecords: []model.FeedbackRecord{record(1, "dave", false)}}
	cache := NewCache(backend, nil)
	if err := cache.Load(context.Background(), "alice", true); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	backend.listErr = errors.New("boom")
	if err := cache.Load(context.Background(), "alice", true); err == nil {
		t.Fatal("expected error from failed load")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after failed load, got %d records", cache.Len())
	}
}

func TestAcknowledgeFlipsOnlyAcknowledged(t *testing.T) {
	before := record(7, "dave", false)
	before.Timestamp = ts(t, "2026-08-01T10:00:00Z")
	backend := &fakeBackend{listRecords: []model.FeedbackRecord{before}}
	cache := NewCache(backend, nil)
	if err := cache.Load(context.Background(), "alice", true); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := cache.Acknowledge(context.Background(), 7); err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}

	after, ok := cache.Find(7)
	if !ok {
		t.Fatal("record vanished")
	}
	if !after.Acknowledged {
		t.Error("expected acknowledged=true")
	}
	// Every other field is untouched.
	after.Acknowledged = before.Acknowledged
	if after.ID != before.ID || after.Strengths != before.Strengths ||
		after.Improvements != before.Improvements || after.Sentiment != before.Sentiment ||
		!after.Timestamp.Equal(before.Timestamp.Time) || after.SenderName() != before.SenderName() {
		t.Errorf("acknowledge changed unrelated fields: before=%+v after=%+v", before, after)
	}

	// Idempotent: a second acknowledge succeeds and changes nothing.
	if err := cache.Acknowledge(context.Background(), 7); err != nil {
		t.Fatalf("second Acknowledge failed: %v", err)
	}
	again, _ := cache.Find(7)
	if !again.Acknowledged {
		t.Error("expected acknowledged to stay true")
	}
}

func TestAcknowledgeFailureLeavesCacheUnchanged(t *testing.T) {
	backend := &fakeBackend{listRecords: []model.FeedbackRecord{record(7, "dave", false)}}
	cache := NewCache(backend, nil)
	if err := cache.Load(context.Background(), "alice", true); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	backend.ackErr = &api.Error{Detail: "Feedback not found", StatusCode: 404}
	err := cache.Acknowledge(context.Background(), 7)
	if err == nil {
		t.Fatal("expected error")
	}
	if api.UserMessage(err) != "Feedback not found" {
		t.Errorf("expected user-visible detail, got %q", api.UserMessage(err))
	}
	if r, _ := cache.Find(7); r.Acknowledged {
		t.Error("failed acknowledge must not flip the flag")
	}
}

func TestSetComment(t *testing.T) {
	t.Run("requires acknowledged", func(t *testing.T) {
		backend := &fakeBackend{listRecords: []model.FeedbackRecord{record(7, "dave", false)}}
		cache := NewCache(backend, nil)
		if err := cache.Load(context.Background(), "alice", true); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		err := cache.SetComment(context.Background(), 7, "hello")
		if !errors.Is(err, ErrNotAcknowledged) {
			t.Fatalf("expected ErrNotAcknowledged, got %v", err)
		}
		for _, call := range backend.calls {
			if call == "comment" {
				t.Error("rejected comment must not reach the backend")
			}
		}
	})

	t.Run("empty text is a no-op", func(t *testing.T) {
		backend := &fakeBackend{listRecords: []model.FeedbackRecord{record(7, "dave", true)}}
		cache := NewCache(backend, nil)
		if err := cache.Load(context.Background(), "alice", true); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if err := cache.SetComment(context.Background(), 7, "   "); err != nil {
			t.Fatalf("empty comment should be a silent no-op, got %v", err)
		}
		if r, _ := cache.Find(7); r.EmployeeComment != nil {
			t.Error("no comment should be stored")
		}
	})

	t.Run("absent record is a no-op", func(t *testing.T) {
		backend := &fakeBackend{}
		cache := NewCache(backend, nil)
		if err := cache.SetComment(context.Background(), 99, "hello"); err != nil {
			t.Fatalf("expected no-op, got %v", err)
		}
	})

	t.Run("success stores the comment", func(t *testing.T) {
		backend := &fakeBackend{listRecords: []model.FeedbackRecord{record(7, "dave", true)}}
		cache := NewCache(backend, nil)
		if err := cache.Load(context.Background(), "alice", true); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if err := cache.SetComment(context.Background(), 7, "thanks"); err != nil {
			t.Fatalf("SetComment failed: %v", err)
		}
		r, _ := cache.Find(7)
		if r.EmployeeComment == nil || *r.EmployeeComment != "thanks" {
			t.Errorf("expected stored comment, got %v", r.EmployeeComment)
		}
	})

	t.Run("failure leaves the record unchanged", func(t *testing.T) {
		backend := &fakeBackend{
			listRecords: []model.FeedbackRecord{record(7, "dave", true)},
			commentErr:  errors.New("boom"),
		}
		cache := NewCache(backend, nil)
		if err := cache.Load(context.Background(), "alice", true); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if err := cache.SetComment(context.Background(), 7, "thanks"); err == nil {
			t.Fatal("expected error")
		}
		if r, _ := cache.Find(7); r.EmployeeComment != nil {
			t.Error("failed comment must not be stored")
		}
	})
}

func TestCreateSynthesizesRecord(t *testing.T) {
	backend := &fakeBackend{createID: 42}
	cache := NewCache(backend, nil)
	cache.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	created, err := cache.Create(context.Background(), model.FeedbackDraft{
		ManagerUsername:  "dave",
		EmployeeUsername: "bob",
		Strengths:        "Great work",
		Improvements:     "None",
		Sentiment:        model.SentimentPositive,
		Anonymous:        false,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID != 42 {
		t.Errorf("expected server-assigned id 42, got %d", created.ID)
	}
	if created.RecipientName() != "bob" {
		t.Errorf("expected to=bob, got %q", created.RecipientName())
	}
	if created.Sentiment != model.SentimentPositive || created.Acknowledged || created.Anonymous {
		t.Errorf("unexpected synthesized record: %+v", created)
	}
	if created.Strengths != "Great work" || created.Improvements != "None" {
		t.Errorf("draft fields not carried over: %+v", created)
	}
	if created.Timestamp.IsZero() {
		t.Error("expected a client-side timestamp")
	}

	got, ok := cache.Find(42)
	if !ok {
		t.Fatal("created record not appended to cache")
	}
	if got.ID != created.ID {
		t.Errorf("cache entry mismatch: %+v", got)
	}
}

func TestCreateFailureAppendsNothing(t *testing.T) {
	backend := &fakeBackend{createErr: errors.New("boom")}
	cache := NewCache(backend, nil)

	if _, err := cache.Create(context.Background(), model.FeedbackDraft{EmployeeUsername: "bob"}); err == nil {
		t.Fatal("expected error")
	}
	if cache.Len() != 0 {
		t.Error("failed create must not add to the cache")
	}
}

func TestUpdateMergesEditableFieldsOnly(t *testing.T) {
	existing := record(7, "dave", true)
	existing.To = strptr("bob")
	existing.EmployeeComment = strptr("keep me")
	backend := &fakeBackend{listRecords: []model.FeedbackRecord{existing}}
	cache := NewCache(backend, nil)
	if err := cache.Load(context.Background(), "dave", false); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	err := cache.Update(context.Background(), 7, model.FeedbackDraft{
		ManagerUsername:  "dave",
		EmployeeUsername: "carol",
		Strengths:        "new s",
		Improvements:     "new i",
		Sentiment:        model.SentimentNegative,
		Anonymous:        true,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := cache.Find(7)
	if got.RecipientName() != "carol" || got.Strengths != "new s" || got.Sentiment != model.SentimentNegative || !got.Anonymous {
		t.Errorf("editable fields not merged: %+v", got)
	}
	if got.ID != 7 || !got.Acknowledged || got.SenderName() != "dave" {
		t.Errorf("protected fields changed: %+v", got)
	}
	if got.EmployeeComment == nil || *got.EmployeeComment != "keep me" {
		t.Errorf("employee comment must survive a manager update: %v", got.EmployeeComment)
	}
}

func TestUpdateFailureLeavesCacheUnchanged(t *testing.T) {
	backend := &fakeBackend{
		listRecords: []model.FeedbackRecord{record(7, "dave", false)},
		updateErr:   &api.Error{Detail: "You can only update your own feedback", StatusCode: 403},
	}
	cache := NewCache(backend, nil)
	if err := cache.Load(context.Background(), "dave", false); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	err := cache.Update(context.Background(), 7, model.FeedbackDraft{Strengths: "changed"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, _ := cache.Find(7); got.Strengths != "s" {
		t.Errorf("failed update must not merge: %+v", got)
	}
}
