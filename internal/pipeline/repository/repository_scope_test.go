package repository

import (
	"strings"
	"testing"
)

func TestLeadQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"getLead":      strings.ToLower(getLeadQuery),
		"listLeads":    strings.ToLower(listLeadsQuery),
		"setLeadStage": strings.ToLower(setLeadStageQuery),
	} {
		if !strings.Contains(query, "l.organization_id = $1") {
			t.Fatalf("%s: expected tenant scope", name)
		}
	}
}

func TestSetLeadStageRequiresTenantOwnedStage(t *testing.T) {
	query := strings.ToLower(setLeadStageQuery)

	if !strings.Contains(query, "s.id = $3 and s.organization_id = $1") {
		t.Fatal("expected the target stage to belong to the same tenant")
	}
}

func TestDefaultStageListMatchesSeededPipeline(t *testing.T) {
	want := []string{
		StageNewLead,
		StageVoicemailLeft,
		StageContacted,
		StageAppointmentScheduled,
		StageFollowUp,
		StageSaleClosed,
		StageNotInterested,
	}

	if len(defaultStages) != len(want) {
		t.Fatalf("expected %d default stages, got %d", len(want), len(defaultStages))
	}
	for i, slug := range want {
		if defaultStages[i].Slug != slug {
			t.Fatalf("expected stage %d to be %s, got %s", i, slug, defaultStages[i].Slug)
		}
	}
}
