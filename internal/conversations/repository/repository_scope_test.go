package repository

import (
	"strings"
	"testing"
)

func TestLinkSessionQueryOnlyTouchesUnresolvedMessages(t *testing.T) {
	query := strings.ToLower(linkSessionQuery)

	requiredFragments := []string{
		"update chat_messages",
		"where organization_id = $1 and session_id = $2",
		"contact_id is null",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected link query fragment %q to be present", fragment)
		}
	}
}

func TestListQueriesAreTenantScopedAndOrdered(t *testing.T) {
	for name, query := range map[string]string{
		"listByTenant":  strings.ToLower(listByTenantQuery),
		"listBySession": strings.ToLower(listBySessionQuery),
	} {
		if !strings.Contains(query, "m.organization_id = $1") {
			t.Fatalf("%s: expected tenant scope", name)
		}
		if !strings.Contains(query, "m.created_at asc") {
			t.Fatalf("%s: expected ascending timestamp ordering", name)
		}
	}
}

func TestContactJoinIsTenantScoped(t *testing.T) {
	query := strings.ToLower(listByTenantQuery)

	if !strings.Contains(query, "c.organization_id = m.organization_id") {
		t.Fatal("expected the contact join to stay within the tenant")
	}
}
