package repository

import (
	"strings"
	"testing"
)

func TestUpsertMergeQueryConflictsOnTenantPhone(t *testing.T) {
	query := strings.ToLower(upsertMergeQuery)

	requiredFragments := []string{
		"on conflict (organization_id, phone) where phone is not null",
		"email = coalesce(contacts.email, excluded.email)",
		"(xmax = 0) as created",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected upsert query fragment %q to be present", fragment)
		}
	}
}

func TestUpsertMergeQueryNeverDiscardsNotes(t *testing.T) {
	query := strings.ToLower(upsertMergeQuery)

	if !strings.Contains(query, "contacts.notes || e'\\n\\n' || excluded.notes") {
		t.Fatal("expected notes merge to concatenate stored and incoming notes")
	}
	if !strings.Contains(query, "when contacts.notes = '' then excluded.notes") {
		t.Fatal("expected empty stored notes to take the incoming value")
	}
}

func TestUpsertMergeQueryNameEmptyNeverOverwrites(t *testing.T) {
	query := strings.ToLower(upsertMergeQuery)

	if !strings.Contains(query, "when excluded.name <> '' then excluded.name else contacts.name") {
		t.Fatal("expected empty incoming name to preserve the stored name")
	}
}

func TestMergeIntoQueryIsTenantScoped(t *testing.T) {
	query := strings.ToLower(mergeIntoQuery)

	if !strings.Contains(query, "where id = $2 and organization_id = $1") {
		t.Fatal("expected merge-into query to be tenant scoped")
	}
}
