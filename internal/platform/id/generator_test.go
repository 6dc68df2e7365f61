package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	got, err := NewUUIDGenerator().NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected uuid, got %q: %v", got, err)
	}
}
