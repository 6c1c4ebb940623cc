package latest

import "testing"

func TestNewerTicketSupersedesOlder(t *testing.T) {
	tracker := NewTracker()

	first := tracker.Begin("product-detail")
	second := tracker.Begin("product-detail")

	if first.Current() {
		t.Fatal("first ticket must be superseded")
	}
	if !second.Current() {
		t.Fatal("second ticket must be current")
	}

	var applied []string
	if first.Apply(func() { applied = append(applied, "first") }) {
		t.Fatal("stale apply must be dropped")
	}
	if !second.Apply(func() { applied = append(applied, "second") }) {
		t.Fatal("current apply must run")
	}
	if len(applied) != 1 || applied[0] != "second" {
		t.Fatalf("unexpected applies %v", applied)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	tracker := NewTracker()

	detail := tracker.Begin("product-detail")
	tracker.Begin("product-list")

	if !detail.Current() {
		t.Fatal("a ticket must only be superseded by its own key")
	}
}

func TestZeroTicketNeverApplies(t *testing.T) {
	var tk Ticket
	if tk.Current() {
		t.Fatal("zero ticket must not be current")
	}
	if tk.Apply(func() {}) {
		t.Fatal("zero ticket must not apply")
	}
}
