// Package session holds the authenticated identity for the lifetime of one
// client run. The identity is an explicit value handed to each view; there is
// no process-global store. Destroy clears exactly this value, nothing else.
package session

import (
	"time"

	"lightfeedback-cli/internal/model"

	"github.com/google/uuid"
)

// Identity is created by a successful login and destroyed on logout. The ID is
// client-generated and only used for log correlation; the backend never sees it.
type Identity struct {
	ID        string
	Username  string
	Role      model.Role
	StartedAt time.Time
}

func Begin(username string, role model.Role) Identity {
	return Identity{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      role,
		StartedAt: time.Now().UTC(),
	}
}

// Active reports whether the identity still represents a logged-in user.
func (id Identity) Active() bool {
	return id.Username != "" && id.Role != ""
}

// Destroy zeroes the identity in place. Logout is complete once this returns;
// nothing about the session survives it.
func (id *Identity) Destroy() {
	*id = Identity{}
}
