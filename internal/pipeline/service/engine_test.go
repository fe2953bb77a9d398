package service

import (
	"testing"

	"hvac_crm_backend/internal/pipeline/repository"
)

func TestQuickActionsFor_EarlyStagesOfferOrderedActions(t *testing.T) {
	staged := []string{
		repository.StageNewLead,
		repository.StageVoicemailLeft,
		repository.StageContacted,
		repository.StageAppointmentScheduled,
	}

	for _, slug := range staged {
		actions := QuickActionsFor(slug)
		if len(actions) == 0 {
			t.Fatalf("expected quick actions for %s", slug)
		}
		for _, action := range actions {
			if action.TargetStage == "" || action.Label == "" {
				t.Fatalf("%s: expected non-empty target and label, got %+v", slug, action)
			}
			if action.TargetStage == slug {
				t.Fatalf("%s: quick action must not target its own stage", slug)
			}
		}
	}
}

func TestQuickActionsFor_NewLeadOrderIsStable(t *testing.T) {
	actions := QuickActionsFor(repository.StageNewLead)

	if len(actions) != 3 {
		t.Fatalf("expected 3 actions for new_lead, got %d", len(actions))
	}
	if actions[0].TargetStage != repository.StageContacted {
		t.Fatalf("expected first action to target contacted, got %s", actions[0].TargetStage)
	}
	if actions[1].TargetStage != repository.StageVoicemailLeft {
		t.Fatalf("expected second action to target voicemail_left, got %s", actions[1].TargetStage)
	}
	if actions[2].TargetStage != repository.StageAppointmentScheduled {
		t.Fatalf("expected third action to target appointment_scheduled, got %s", actions[2].TargetStage)
	}
}

func TestQuickActionsFor_TerminalAndHoldingStagesOfferNone(t *testing.T) {
	for _, slug := range []string{
		repository.StageFollowUp,
		repository.StageSaleClosed,
		repository.StageNotInterested,
		"some_custom_stage",
	} {
		actions := QuickActionsFor(slug)
		if actions == nil {
			t.Fatalf("%s: expected empty slice, got nil", slug)
		}
		if len(actions) != 0 {
			t.Fatalf("%s: expected no quick actions, got %d", slug, len(actions))
		}
	}
}

func TestQuickActionsFor_ReturnsACopy(t *testing.T) {
	first := QuickActionsFor(repository.StageNewLead)
	first[0].Label = "mutated"

	second := QuickActionsFor(repository.StageNewLead)
	if second[0].Label == "mutated" {
		t.Fatal("expected quick action table to be immutable to callers")
	}
}
