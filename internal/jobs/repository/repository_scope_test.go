package repository

import (
	"strings"
	"testing"
)

func TestListQueryOrdersEmergencyFirst(t *testing.T) {
	query := strings.ToLower(listQuery)

	if !strings.Contains(query, "case when j.priority = 'emergency' then 0 else 1 end") {
		t.Fatal("expected emergency jobs to sort first")
	}
	if !strings.Contains(query, "j.created_at desc") {
		t.Fatal("expected recency ordering within a priority tier")
	}
}

func TestJobQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"getByID":      strings.ToLower(getByIDQuery),
		"list":         strings.ToLower(listQuery),
		"updateStatus": strings.ToLower(updateStatusQuery),
	} {
		if !strings.Contains(query, "organization_id = $1") {
			t.Fatalf("%s: expected tenant scope", name)
		}
	}
}
