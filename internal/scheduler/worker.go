package scheduler

import (
	"context"
	"fmt"

	"hvac_crm_backend/platform/config"
	"hvac_crm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// LeadChecker exposes the pipeline state the reminder handler needs.
// Implemented by the pipeline service; injected from the composition root.
type LeadChecker interface {
	LeadStage(ctx context.Context, organizationID, leadID uuid.UUID) (string, error)
	RecordReminder(ctx context.Context, organizationID, leadID uuid.UUID, note string) error
}

// Worker consumes scheduled tasks from Redis.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  LeadChecker
	log    *logger.Logger
}

// NewWorker creates an asynq worker bound to the configured queue.
func NewWorker(cfg config.SchedulerConfig, leads LeadChecker, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leads,
		log:    log,
	}

	mux.HandleFunc(TaskLeadFollowUpReminder, w.handleLeadFollowUpReminder)

	return w, nil
}

// handleLeadFollowUpReminder fires when a follow-up delay elapses. The
// reminder is only recorded if the lead is still parked in follow_up;
// leads that moved on since scheduling are skipped.
func (w *Worker) handleLeadFollowUpReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadFollowUpReminderPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	orgID, err := uuid.Parse(payload.OrganizationID)
	if err != nil {
		return err
	}

	stage, err := w.leads.LeadStage(ctx, orgID, leadID)
	if err != nil {
		return err
	}
	if stage != "follow_up" {
		return nil
	}

	note := fmt.Sprintf("Follow-up reminder: %s is still waiting in follow_up", payload.LeadName)
	if err := w.leads.RecordReminder(ctx, orgID, leadID, note); err != nil {
		return err
	}

	w.log.Info("follow-up reminder delivered", "tenant_id", orgID, "lead_id", leadID)
	return nil
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
