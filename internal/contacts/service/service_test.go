package service

import "testing"

func TestNormalizeFragment_TrimsAndCanonicalizes(t *testing.T) {
	fragment := NormalizeFragment(Fragment{
		Name:      "  Jordan Fields  ",
		Phone:     " (555) 123-4567 ",
		Email:     "  Jordan@Example.COM ",
		Notes:     "  needs duct cleaning  ",
		SessionID: " session-1 ",
	})

	if fragment.Name != "Jordan Fields" {
		t.Fatalf("expected trimmed name, got %q", fragment.Name)
	}
	if fragment.Phone != "+15551234567" {
		t.Fatalf("expected E.164 phone, got %q", fragment.Phone)
	}
	if fragment.Email != "jordan@example.com" {
		t.Fatalf("expected lowercase email, got %q", fragment.Email)
	}
	if fragment.Notes != "needs duct cleaning" {
		t.Fatalf("expected trimmed notes, got %q", fragment.Notes)
	}
	if fragment.SessionID != "session-1" {
		t.Fatalf("expected trimmed session id, got %q", fragment.SessionID)
	}
}

func TestNormalizeFragment_EmptyPhoneStaysAbsent(t *testing.T) {
	fragment := NormalizeFragment(Fragment{Phone: "   "})
	if fragment.Phone != "" {
		t.Fatalf("expected absent phone, got %q", fragment.Phone)
	}
}

func TestNormalizeFragment_SamePhoneDifferentFormattingSameKey(t *testing.T) {
	a := NormalizeFragment(Fragment{Phone: "555-123-4567"})
	b := NormalizeFragment(Fragment{Phone: "(555) 123 4567"})
	c := NormalizeFragment(Fragment{Phone: "+1 555 123 4567"})

	if a.Phone != b.Phone || b.Phone != c.Phone {
		t.Fatalf("expected identical keys, got %q %q %q", a.Phone, b.Phone, c.Phone)
	}
}

func TestMergeNotes_BothPresentConcatenatesLosslessly(t *testing.T) {
	merged := MergeNotes("previous visit: replaced filter", "now reporting a leak")
	want := "previous visit: replaced filter\n\nnow reporting a leak"
	if merged != want {
		t.Fatalf("expected %q, got %q", want, merged)
	}
}

func TestMergeNotes_EmptySideWins(t *testing.T) {
	if got := MergeNotes("", "incoming"); got != "incoming" {
		t.Fatalf("expected incoming, got %q", got)
	}
	if got := MergeNotes("stored", ""); got != "stored" {
		t.Fatalf("expected stored, got %q", got)
	}
	if got := MergeNotes("", ""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestMergeNotes_RepeatedMergeKeepsEveryFragment(t *testing.T) {
	notes := ""
	notes = MergeNotes(notes, "first")
	notes = MergeNotes(notes, "second")
	notes = MergeNotes(notes, "third")

	want := "first\n\nsecond\n\nthird"
	if notes != want {
		t.Fatalf("expected %q, got %q", want, notes)
	}
}
