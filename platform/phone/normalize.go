// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the region used to parse numbers supplied without a
// country prefix. Overridable per deployment via PHONE_DEFAULT_REGION.
var DefaultRegion = "US"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Key returns the canonical identity-lookup key for a phone number.
// Valid numbers canonicalize to E.164; any non-empty input that cannot be
// parsed is kept as trimmed digits so the same malformed value still
// deduplicates consistently. Empty input yields the empty string, which
// callers treat as "phone absent".
func Key(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	return NormalizeE164(trimmed)
}
