package services

import "testing"

func TestSessionRegistry_AcquireGeneratesID(t *testing.T) {
	registry := NewSessionRegistry(5)

	id, session := registry.Acquire("")
	if id == "" {
		t.Fatal("expected a generated session id")
	}
	if session == nil {
		t.Fatal("expected a context manager")
	}
	if registry.Len() != 1 {
		t.Fatalf("len = %d, want 1", registry.Len())
	}
}

func TestSessionRegistry_AcquireReusesKnownID(t *testing.T) {
	registry := NewSessionRegistry(5)

	id, first := registry.Acquire("")
	sameID, second := registry.Acquire(id)

	if sameID != id {
		t.Fatalf("id changed: %q != %q", sameID, id)
	}
	if first != second {
		t.Fatal("known session id must return the same manager")
	}
}

func TestSessionRegistry_UnknownIDStartsFreshSession(t *testing.T) {
	registry := NewSessionRegistry(5)

	id, session := registry.Acquire("client-supplied-id")
	if id != "client-supplied-id" {
		t.Fatalf("client id not preserved: %q", id)
	}
	if session == nil {
		t.Fatal("expected a context manager")
	}
	if registry.Len() != 1 {
		t.Fatalf("len = %d, want 1", registry.Len())
	}
}
