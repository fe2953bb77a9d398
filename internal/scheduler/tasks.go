// Package scheduler provides delayed task scheduling on asynq: follow-up
// reminders for leads parked in the follow_up stage.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadFollowUpReminder = "leads.follow_up.reminder"

type LeadFollowUpReminderPayload struct {
	LeadID         string `json:"leadId"`
	OrganizationID string `json:"organizationId"`
	LeadName       string `json:"leadName"`
}

func NewLeadFollowUpReminderTask(payload LeadFollowUpReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowUpReminder, data), nil
}

func ParseLeadFollowUpReminderPayload(task *asynq.Task) (LeadFollowUpReminderPayload, error) {
	var payload LeadFollowUpReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadFollowUpReminderPayload{}, err
	}
	return payload, nil
}
