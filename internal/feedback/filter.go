package feedback

import (
	"strings"

	"lightfeedback-cli/internal/model"
)

type ReadFilter string

const (
	FilterAll    ReadFilter = "all"
	FilterRead   ReadFilter = "read"
	FilterUnread ReadFilter = "unread"
)

// Next cycles all -> unread -> read -> all, the order the employee dashboard
// steps through.
func (f ReadFilter) Next() ReadFilter {
	switch f {
	case FilterAll:
		return FilterUnread
	case FilterUnread:
		return FilterRead
	default:
		return FilterAll
	}
}

// FilterState selects the displayed subset of the cache. It never mutates
// records; Apply is a pure function and may be recomputed on every render.
type FilterState struct {
	Read   ReadFilter
	Search string
}

// Apply returns the ordered subsequence of records matching both predicates.
// The read filter keys on the acknowledged flag; the search is a
// case-insensitive substring match on the sender display name. An empty
// search matches everything, including anonymous records with no sender.
func (f FilterState) Apply(records []model.FeedbackRecord) []model.FeedbackRecord {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.FeedbackRecord, 0, len(records))
	for _, r := range records {
		switch f.Read {
		case FilterRead:
			if !r.Acknowledged {
				continue
			}
		case FilterUnread:
			if r.Acknowledged {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(r.SenderName()), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}
