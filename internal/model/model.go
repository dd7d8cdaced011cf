package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a role string from user input or a backend response.
// The second return is false for anything outside the known set; callers must
// treat that as a reported error, never a panic.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleManager:
		return RoleManager, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleHR:
		return RoleHR, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Timestamp is a time.Time that tolerates the backend's naive ISO timestamps
// (no timezone suffix), which it treats as UTC. Marshals as RFC 3339.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Time.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// FeedbackRecord is one feedback instance as the backend serves it.
//
// From is nil when the sender withheld their identity (anonymous) or when the
// backend elides it for the viewer's role. To is nil on the employee-facing
// shape, where the recipient is implicit.
type FeedbackRecord struct {
	ID           int       `json:"id"`
	From         *string   `json:"from,omitempty"`
	To           *string   `json:"to,omitempty"`
	Strengths    string    `json:"strengths"`
	Improvements string    `json:"improvements"`
	Sentiment    Sentiment `json:"sentiment"`
	Timestamp    Timestamp `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
	Anonymous    bool      `json:"anonymous,omitempty"`

	// EmployeeComment is absent until the employee submits one; the backend
	// only accepts it after the record is acknowledged.
	EmployeeComment *string `json:"employee_comment,omitempty"`
}

// SenderName is the display name used for search matching and rendering.
// Anonymous records have no sender name.
func (f FeedbackRecord) SenderName() string {
	if f.From == nil {
		return ""
	}
	return *f.From
}

func (f FeedbackRecord) RecipientName() string {
	if f.To == nil {
		return ""
	}
	return *f.To
}

// FeedbackDraft carries the editable fields of a record: the body of a create
// or update request, and the working state of an edit session.
type FeedbackDraft struct {
	ManagerUsername  string    `json:"manager_username"`
	EmployeeUsername string    `json:"employee_username"`
	Strengths        string    `json:"strengths"`
	Improvements     string    `json:"improvements"`
	Sentiment        Sentiment `json:"sentiment"`
	Anonymous        bool      `json:"anonymous"`
}

// Summary is the read-only aggregate for a manager's team. SentimentCounts may
// omit sentiments with zero records, matching the backend's counter shape.
type Summary struct {
	Manager         string            `json:"manager"`
	TotalFeedbacks  int               `json:"total_feedbacks"`
	SentimentCounts map[Sentiment]int `json:"sentiment_counts"`
}

func (s Summary) Count(sent Sentiment) int {
	return s.SentimentCounts[sent]
}

// Timeline is the employee dashboard aggregate: the user's feedback ordered
// newest first by the backend.
type Timeline struct {
	Employee         string           `json:"employee"`
	FeedbackTimeline []FeedbackRecord `json:"feedback_timeline"`
}
