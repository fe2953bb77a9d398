package service

import "hvac_crm_backend/internal/pipeline/repository"

// QuickAction is a recommended next transition for a lead in a given stage.
type QuickAction struct {
	TargetStage string `json:"targetStage"`
	Label       string `json:"label"`
}

// quickActions declares the recommended next actions per stage. Only the
// early pipeline stages carry recommendations; terminal and holding stages
// offer none. The table is advisory: the general stage selector may move a
// lead to any stage regardless of what is listed here.
var quickActions = map[string][]QuickAction{
	repository.StageNewLead: {
		{TargetStage: repository.StageContacted, Label: "Mark contacted"},
		{TargetStage: repository.StageVoicemailLeft, Label: "Left voicemail"},
		{TargetStage: repository.StageAppointmentScheduled, Label: "Schedule appointment"},
	},
	repository.StageVoicemailLeft: {
		{TargetStage: repository.StageContacted, Label: "Reached customer"},
		{TargetStage: repository.StageFollowUp, Label: "Try again later"},
		{TargetStage: repository.StageNotInterested, Label: "Not interested"},
	},
	repository.StageContacted: {
		{TargetStage: repository.StageAppointmentScheduled, Label: "Schedule appointment"},
		{TargetStage: repository.StageFollowUp, Label: "Follow up later"},
		{TargetStage: repository.StageNotInterested, Label: "Not interested"},
	},
	repository.StageAppointmentScheduled: {
		{TargetStage: repository.StageSaleClosed, Label: "Close sale"},
		{TargetStage: repository.StageFollowUp, Label: "Needs follow-up"},
		{TargetStage: repository.StageNotInterested, Label: "Not interested"},
	},
}

// QuickActionsFor returns the ordered recommended transitions for a stage.
// Stages without declared transitions return an empty slice, never nil.
func QuickActionsFor(stageSlug string) []QuickAction {
	actions, ok := quickActions[stageSlug]
	if !ok {
		return []QuickAction{}
	}

	// Callers must not mutate the shared table.
	out := make([]QuickAction, len(actions))
	copy(out, actions)
	return out
}
