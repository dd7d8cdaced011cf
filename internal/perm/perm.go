package perm

import (
	"strings"

	"lightfeedback-cli/internal/model"
	"lightfeedback-cli/internal/session"
)

// Client-side mirror of the backend's access rules. The backend remains the
// authority on every mutation; these checks only keep the UI from offering
// actions the server would reject anyway.

// CanSubmitFeedback reports whether the signed-in user may compose new
// feedback. Only managers write feedback.
func CanSubmitFeedback(id session.Identity) bool {
	return id.Role == model.RoleManager
}

// CanEditFeedback reports whether the signed-in user may revise an existing
// record. Managers edit feedback they sent; a record with no sender is never
// editable from this client.
func CanEditFeedback(id session.Identity, r model.FeedbackRecord) bool {
	if id.Role != model.RoleManager {
		return false
	}
	if r.From == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*r.From), strings.TrimSpace(id.Username))
}

// CanAcknowledge reports whether the signed-in user may mark a record as
// read. Only the recipient acknowledges, and only once.
func CanAcknowledge(id session.Identity, r model.FeedbackRecord) bool {
	if id.Role != model.RoleEmployee || r.Acknowledged {
		return false
	}
	return isRecipient(id, r)
}

// CanComment reports whether the signed-in user may attach a comment. The
// record must be acknowledged first.
func CanComment(id session.Identity, r model.FeedbackRecord) bool {
	if id.Role != model.RoleEmployee || !r.Acknowledged {
		return false
	}
	return isRecipient(id, r)
}

// CanViewSummary reports whether the signed-in user sees the team overview.
func CanViewSummary(id session.Identity) bool {
	return id.Role == model.RoleManager
}

// isRecipient treats a record with no recipient as addressed to the viewer:
// the employee-facing wire shape omits "to" because the recipient is implicit
// in the list the record came from.
func isRecipient(id session.Identity, r model.FeedbackRecord) bool {
	if r.To == nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(*r.To), strings.TrimSpace(id.Username))
}
