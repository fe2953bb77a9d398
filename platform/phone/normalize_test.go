package phone

import "testing"

func TestNormalizeE164_USNumberWithoutPrefix(t *testing.T) {
	if got := NormalizeE164("(555) 123-4567"); got != "+15551234567" {
		t.Fatalf("expected +15551234567, got %q", got)
	}
}

func TestNormalizeE164_AlreadyCanonical(t *testing.T) {
	if got := NormalizeE164("+15551234567"); got != "+15551234567" {
		t.Fatalf("expected +15551234567, got %q", got)
	}
}

func TestNormalizeE164_UnparseableInputKeptTrimmed(t *testing.T) {
	if got := NormalizeE164("  not-a-number  "); got != "not-a-number" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
}

func TestKey_EmptyMeansAbsent(t *testing.T) {
	if got := Key("   "); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}

func TestKey_FormattingVariantsCollapse(t *testing.T) {
	variants := []string{"555-123-4567", "(555) 123 4567", "+1 555 123 4567", "5551234567"}

	want := Key(variants[0])
	for _, variant := range variants[1:] {
		if got := Key(variant); got != want {
			t.Fatalf("expected %q and %q to share a key, got %q vs %q", variants[0], variant, want, got)
		}
	}
}
