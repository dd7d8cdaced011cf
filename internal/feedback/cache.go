// Package feedback implements the client-side state shared by the manager and
// employee dashboards: an in-memory cache of feedback records kept eventually
// consistent with the backend, a single-slot edit session, and a pure
// filter/search view.
//
// Every mutation is confirm-then-apply: the backend round-trip happens first,
// and the local cache changes only after a 2xx response. A failed call leaves
// the cache byte-for-byte unchanged so the user can simply retry.
package feedback

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"lightfeedback-cli/internal/api"
	"lightfeedback-cli/internal/model"

	"go.uber.org/zap"
)

// ErrNotAcknowledged is returned when a comment is attempted on a record the
// employee has not yet acknowledged. The UI never offers the action in that
// state, but the cache enforces the rule regardless.
var ErrNotAcknowledged = errors.New("feedback: record must be acknowledged before commenting")

// Backend is the slice of the API client the cache depends on. *api.Client
// satisfies it; tests substitute a scripted fake.
type Backend interface {
	ListFeedback(ctx context.Context, username string, opts api.ListOptions) ([]model.FeedbackRecord, error)
	Acknowledge(ctx context.Context, feedbackID int) error
	SetComment(ctx context.Context, feedbackID int, comment string) error
	CreateFeedback(ctx context.Context, draft model.FeedbackDraft) (int, error)
	UpdateFeedback(ctx context.Context, feedbackID int, draft model.FeedbackDraft) error
}

// Cache is the ordered collection of feedback records for one user. Methods
// are safe for concurrent use: the network round-trip happens outside the
// lock, so two in-flight operations complete independently and their local
// updates land in response-arrival order, not issuance order. Growth is
// unbounded; there is no pagination in this scope.
type Cache struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	records []model.FeedbackRecord
}

func NewCache(backend Backend, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Records returns a copy of the cached records in display order.
func (c *Cache) Records() []model.FeedbackRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.FeedbackRecord, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Find returns the cached record with the given id.
func (c *Cache) Find(feedbackID int) (model.FeedbackRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.ID == feedbackID {
			return r, true
		}
	}
	return model.FeedbackRecord{}, false
}

// indexOf requires c.mu to be held.
func (c *Cache) indexOf(feedbackID int) int {
	for i := range c.records {
		if c.records[i].ID == feedbackID {
			return i
		}
	}
	return -1
}

// Load replaces the whole cache with the backend's records for username.
// newestFirst applies the employee view's timestamp-descending order;
// the manager view keeps the backend's order as-is.
//
// A failed load is silent apart from the log: the cache is left empty and no
// retry is attempted. The user sees an empty list, not a broken screen.
func (c *Cache) Load(ctx context.Context, username string, newestFirst bool) error {
	records, err := c.backend.ListFeedback(ctx, username, api.ListOptions{})
	if err != nil {
		c.logger.Warn("feedback load failed", zap.String("username", username), zap.Error(err))
		c.mu.Lock()
		c.records = nil
		c.mu.Unlock()
		return err
	}
	if newestFirst {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.After(records[j].Timestamp.Time)
		})
	}
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	c.logger.Debug("feedback loaded", zap.String("username", username), zap.Int("count", len(records)))
	return nil
}

// Acknowledge confirms the record with the backend, then flips acknowledged to
// true locally. The transition is one-way and idempotent; no other field is
// touched. On failure the cache is unchanged.
func (c *Cache) Acknowledge(ctx context.Context, feedbackID int) error {
	if err := c.backend.Acknowledge(ctx, feedbackID); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(feedbackID); i >= 0 {
		c.records[i].Acknowledged = true
	}
	return nil
}

// SetComment attaches text to an acknowledged record. Empty text is a no-op,
// as is a record id absent from the cache. On success the comment is stored
// locally; a failure leaves the cache unchanged so the caller can keep the
// draft for retry.
func (c *Cache) SetComment(ctx context.Context, feedbackID int, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	record, ok := c.Find(feedbackID)
	if !ok {
		return nil
	}
	if !record.Acknowledged {
		return ErrNotAcknowledged
	}
	if err := c.backend.SetComment(ctx, feedbackID, text); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(feedbackID); i >= 0 {
		comment := text
		c.records[i].EmployeeComment = &comment
	}
	return nil
}

// Create submits the draft and, once the backend confirms, appends a locally
// synthesized record carrying the server-assigned id and the draft's fields.
// The timestamp is the client clock; it is not authoritative and is replaced
// by the server's on the next Load. Returns the appended record.
func (c *Cache) Create(ctx context.Context, draft model.FeedbackDraft) (model.FeedbackRecord, error) {
	id, err := c.backend.CreateFeedback(ctx, draft)
	if err != nil {
		return model.FeedbackRecord{}, err
	}

	from := draft.ManagerUsername
	to := draft.EmployeeUsername
	record := model.FeedbackRecord{
		ID:           id,
		From:         &from,
		To:           &to,
		Strengths:    draft.Strengths,
		Improvements: draft.Improvements,
		Sentiment:    draft.Sentiment,
		Timestamp:    model.NewTimestamp(c.now()),
		Acknowledged: false,
		Anonymous:    draft.Anonymous,
	}
	c.mu.Lock()
	c.records = append(c.records, record)
	c.mu.Unlock()
	return record, nil
}

// Update sends a full replacement of the editable fields and merges them into
// the matching cached record on success. Identifier, sender, acknowledged
// state, and the employee comment are never touched. An id absent from the
// cache still updates the backend but applies nothing locally.
func (c *Cache) Update(ctx context.Context, feedbackID int, draft model.FeedbackDraft) error {
	if err := c.backend.UpdateFeedback(ctx, feedbackID, draft); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(feedbackID); i >= 0 {
		to := draft.EmployeeUsername
		c.records[i].To = &to
		c.records[i].Strengths = draft.Strengths
		c.records[i].Improvements = draft.Improvements
		c.records[i].Sentiment = draft.Sentiment
		c.records[i].Anonymous = draft.Anonymous
	}
	return nil
}
