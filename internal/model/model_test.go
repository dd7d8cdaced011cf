package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"manager", RoleManager, true},
		{"Employee", RoleEmployee, true},
		{"  HR  ", RoleHR, true},
		{"ADMIN", RoleAdmin, true},
		{"wizard", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRole(%q): expected (%q, %v); got (%q, %v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestSentimentValid(t *testing.T) {
	for _, s := range []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative} {
		if !s.Valid() {
			t.Fatalf("expected %q valid", s)
		}
	}
	if Sentiment("great").Valid() {
		t.Fatal("expected unknown sentiment invalid")
	}
}

func TestTimestampUnmarshalNaiveISO(t *testing.T) {
	// The backend emits naive ISO timestamps with no timezone suffix; they
	// are UTC by convention.
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2026-08-01T10:00:00"`, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{`"2026-08-01T10:00:00.123456"`, time.Date(2026, 8, 1, 10, 0, 0, 123456000, time.UTC)},
		{`"2026-08-01T10:00:00Z"`, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{`"2026-08-01T12:00:00+02:00"`, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tc.in), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if !ts.Time.Equal(tc.want) {
			t.Fatalf("unmarshal %s: expected %v; got %v", tc.in, tc.want, ts.Time)
		}
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !ts.IsZero() {
		t.Fatalf("expected zero time for null; got %v", ts.Time)
	}

	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestFeedbackRecordJSONShape(t *testing.T) {
	// The employee-facing shape: no "to", anonymous sender elided.
	raw := `{
		"id": 12,
		"from": null,
		"strengths": "Clear writeups",
		"improvements": "Raise blockers earlier",
		"sentiment": "neutral",
		"timestamp": "2026-08-15T09:30:00",
		"acknowledged": false,
		"anonymous": true
	}`
	var rec FeedbackRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.ID != 12 || rec.From != nil || !rec.Anonymous {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.SenderName() != "" {
		t.Fatalf("expected empty sender name for anonymous record; got %q", rec.SenderName())
	}
	if rec.EmployeeComment != nil {
		t.Fatal("expected no comment on a fresh record")
	}
}

func TestSummaryCountMissingSentiment(t *testing.T) {
	s := Summary{Manager: "maria", TotalFeedbacks: 2, SentimentCounts: map[Sentiment]int{SentimentPositive: 2}}
	if got := s.Count(SentimentPositive); got != 2 {
		t.Fatalf("expected 2; got %d", got)
	}
	if got := s.Count(SentimentNegative); got != 0 {
		t.Fatalf("expected omitted sentiment to count as zero; got %d", got)
	}

	var empty Summary
	if got := empty.Count(SentimentNeutral); got != 0 {
		t.Fatalf("expected zero on nil map; got %d", got)
	}
}
