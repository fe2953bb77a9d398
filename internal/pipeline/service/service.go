package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hvac_crm_backend/internal/events"
	"hvac_crm_backend/internal/pipeline/repository"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
)

// ReminderScheduler enqueues delayed follow-up reminders. Implemented by
// the scheduler module; a nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleFollowUpReminder(ctx context.Context, organizationID, leadID uuid.UUID, leadName string) error
}

// Service implements pipeline business logic.
type Service struct {
	repo      repository.Repository
	bus       events.Bus
	scheduler ReminderScheduler
	log       *logger.Logger
}

// New creates a new pipeline service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// SetReminderScheduler wires the follow-up reminder scheduler. Called from
// the composition root after both modules exist.
func (s *Service) SetReminderScheduler(scheduler ReminderScheduler) {
	s.scheduler = scheduler
}

// SeedStages creates the default stage list for a tenant. Invoked from the
// TenantCreated event subscription.
func (s *Service) SeedStages(ctx context.Context, organizationID uuid.UUID) error {
	if err := s.repo.SeedDefaultStages(ctx, organizationID); err != nil {
		return err
	}

	s.log.Info("pipeline stages seeded", "tenant_id", organizationID)
	return nil
}

// ListStages returns the tenant's stages in pipeline order.
func (s *Service) ListStages(ctx context.Context, organizationID uuid.UUID) ([]repository.Stage, error) {
	return s.repo.ListStages(ctx, organizationID)
}

// CreateLead registers a new lead in the new_lead stage.
func (s *Service) CreateLead(ctx context.Context, organizationID uuid.UUID, params repository.CreateLeadParams) (repository.Lead, error) {
	params.CompanyName = strings.TrimSpace(params.CompanyName)
	params.ContactName = strings.TrimSpace(params.ContactName)
	if params.CompanyName == "" {
		return repository.Lead{}, apperr.Validation("company name is required")
	}

	lead, err := s.repo.CreateLead(ctx, organizationID, params)
	if err != nil {
		return repository.Lead{}, err
	}

	s.log.Info("lead created", "tenant_id", organizationID, "lead_id", lead.ID)
	return lead, nil
}

// GetLead retrieves a lead.
func (s *Service) GetLead(ctx context.Context, organizationID, id uuid.UUID) (repository.Lead, error) {
	return s.repo.GetLead(ctx, organizationID, id)
}

// ListLeads returns the tenant's leads.
func (s *Service) ListLeads(ctx context.Context, organizationID uuid.UUID) ([]repository.Lead, error) {
	return s.repo.ListLeads(ctx, organizationID)
}

// ListHistory returns a lead's stage transitions.
func (s *Service) ListHistory(ctx context.Context, organizationID, leadID uuid.UUID) ([]repository.StageHistoryEntry, error) {
	if _, err := s.repo.GetLead(ctx, organizationID, leadID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, organizationID, leadID)
}

// QuickActions returns the recommended next transitions for a lead's
// current stage.
func (s *Service) QuickActions(ctx context.Context, organizationID, leadID uuid.UUID) ([]QuickAction, error) {
	lead, err := s.repo.GetLead(ctx, organizationID, leadID)
	if err != nil {
		return nil, err
	}

	return QuickActionsFor(lead.StageSlug), nil
}

// LeadStage returns a lead's current stage slug. Used by the follow-up
// reminder worker to skip leads that already moved on.
func (s *Service) LeadStage(ctx context.Context, organizationID, leadID uuid.UUID) (string, error) {
	lead, err := s.repo.GetLead(ctx, organizationID, leadID)
	if err != nil {
		return "", err
	}
	return lead.StageSlug, nil
}

// RecordReminder appends a reminder note to the lead's history without
// changing its stage.
func (s *Service) RecordReminder(ctx context.Context, organizationID, leadID uuid.UUID, note string) error {
	lead, err := s.repo.GetLead(ctx, organizationID, leadID)
	if err != nil {
		return err
	}
	return s.repo.InsertHistory(ctx, organizationID, leadID, lead.StageSlug, lead.StageSlug, note)
}

// ChangeStage moves a lead to any stage belonging to the tenant. The
// transition table is advisory only; this general selector accepts every
// tenant-owned stage. Records history, publishes LeadStageChanged, and
// schedules a follow-up reminder when the lead enters follow_up.
func (s *Service) ChangeStage(ctx context.Context, organizationID, leadID uuid.UUID, stageSlug, note string) (repository.Lead, error) {
	lead, err := s.repo.GetLead(ctx, organizationID, leadID)
	if err != nil {
		return repository.Lead{}, err
	}

	stage, err := s.repo.GetStageBySlug(ctx, organizationID, stageSlug)
	if err != nil {
		return repository.Lead{}, err
	}

	if lead.StageSlug == stage.Slug {
		return lead, nil
	}

	updated, err := s.repo.SetLeadStage(ctx, organizationID, leadID, stage.ID)
	if err != nil {
		return repository.Lead{}, err
	}

	if err := s.repo.InsertHistory(ctx, organizationID, leadID, lead.StageSlug, stage.Slug, note); err != nil {
		s.log.Error("failed to record stage history", "tenant_id", organizationID, "lead_id", leadID, "error", err)
	}

	s.bus.Publish(ctx, events.LeadStageChanged{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  organizationID,
		LeadID:    leadID,
		FromStage: lead.StageSlug,
		ToStage:   stage.Slug,
		ChangedAt: time.Now().UTC(),
	})

	if stage.Slug == repository.StageFollowUp && s.scheduler != nil {
		if err := s.scheduler.ScheduleFollowUpReminder(ctx, organizationID, leadID, updated.CompanyName); err != nil {
			s.log.Error("failed to schedule follow-up reminder", "tenant_id", organizationID, "lead_id", leadID, "error", err)
		}
	}

	s.log.Info("lead stage changed",
		"tenant_id", organizationID, "lead_id", leadID,
		"from", lead.StageSlug, "to", stage.Slug)
	return updated, nil
}
