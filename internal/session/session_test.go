package session

import (
	"testing"

	"lightfeedback-cli/internal/model"
)

func TestBeginAndDestroy(t *testing.T) {
	id := Begin("alice", model.RoleEmployee)
	if !id.Active() {
		t.Fatal("expected fresh session to be active")
	}
	if id.ID == "" {
		t.Error("expected a client-side session id")
	}
	if id.Username != "alice" || id.Role != model.RoleEmployee {
		t.Errorf("unexpected identity: %+v", id)
	}

	id.Destroy()
	if id.Active() {
		t.Fatal("expected destroyed session to be inactive")
	}
	if id.ID != "" || id.Username != "" || id.Role != "" {
		t.Errorf("expected all fields cleared, got %+v", id)
	}
}

func TestDistinctSessionIDs(t *testing.T) {
	a := Begin("alice", model.RoleManager)
	b := Begin("alice", model.RoleManager)
	if a.ID == b.ID {
		t.Error("expected distinct session ids per login")
	}
}
