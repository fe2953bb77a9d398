package repository

import (
	"strings"
	"testing"
)

func TestClaimQueryConflictsOnTenantKey(t *testing.T) {
	query := strings.ToLower(claimQuery)

	if !strings.Contains(query, "on conflict (organization_id, idempotency_key) do nothing") {
		t.Fatal("expected claim insert to be a no-op on replay")
	}
}

func TestCompleteQueryIsTenantScoped(t *testing.T) {
	query := strings.ToLower(completeQuery)

	if !strings.Contains(query, "where organization_id = $1 and idempotency_key = $2") {
		t.Fatal("expected completion update to be tenant scoped")
	}
}
