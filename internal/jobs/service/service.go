package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hvac_crm_backend/internal/jobs/repository"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
)

// transitions is the linear job status state machine. A status may only
// advance to its single declared successor.
var transitions = map[string]string{
	repository.StatusNew:       repository.StatusScheduled,
	repository.StatusScheduled: repository.StatusProgress,
	repository.StatusProgress:  repository.StatusDone,
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to string) bool {
	return transitions[from] == to
}

// CreateParams holds the fields for creating a job through the service.
type CreateParams struct {
	ContactID   uuid.UUID
	ServiceType string
	Priority    string
	Notes       string
}

// Service implements job business logic.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new jobs service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create inserts a job for the tenant. Jobs are created here by operators
// or by the conversion transaction via CreateTx.
func (s *Service) Create(ctx context.Context, organizationID uuid.UUID, params CreateParams) (repository.Job, error) {
	if err := validateParams(&params); err != nil {
		return repository.Job{}, err
	}

	job, err := s.repo.Insert(ctx, organizationID, repository.InsertParams{
		ContactID:   params.ContactID,
		ServiceType: params.ServiceType,
		Priority:    params.Priority,
		Notes:       params.Notes,
	})
	if err != nil {
		return repository.Job{}, err
	}

	s.log.Info("job created", "tenant_id", organizationID, "job_id", job.ID, "priority", job.Priority)
	return job, nil
}

// CreateTx inserts a job inside an open transaction.
func (s *Service) CreateTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, params CreateParams) (repository.Job, error) {
	if err := validateParams(&params); err != nil {
		return repository.Job{}, err
	}

	return s.repo.InsertTx(ctx, tx, organizationID, repository.InsertParams{
		ContactID:   params.ContactID,
		ServiceType: params.ServiceType,
		Priority:    params.Priority,
		Notes:       params.Notes,
	})
}

// GetByID retrieves a job.
func (s *Service) GetByID(ctx context.Context, organizationID, id uuid.UUID) (repository.Job, error) {
	return s.repo.GetByID(ctx, organizationID, id)
}

// List retrieves the tenant's jobs, emergency first.
func (s *Service) List(ctx context.Context, organizationID uuid.UUID, params repository.ListParams) ([]repository.Job, error) {
	if params.Status != "" && !validStatus(params.Status) {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", params.Status))
	}
	return s.repo.List(ctx, organizationID, params)
}

// UpdateStatus advances a job along the status state machine. Skipping a
// step or moving backwards is rejected.
func (s *Service) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) (repository.Job, error) {
	if !validStatus(status) {
		return repository.Job{}, apperr.Validation(fmt.Sprintf("unknown status %q", status))
	}

	job, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return repository.Job{}, err
	}

	if !CanTransition(job.Status, status) {
		return repository.Job{}, apperr.Validation(fmt.Sprintf("cannot transition job from %q to %q", job.Status, status))
	}

	updated, err := s.repo.UpdateStatus(ctx, organizationID, id, status)
	if err != nil {
		return repository.Job{}, err
	}

	s.log.Info("job status changed", "tenant_id", organizationID, "job_id", id, "from", job.Status, "to", status)
	return updated, nil
}

func validateParams(params *CreateParams) error {
	if params.ContactID == uuid.Nil {
		return apperr.Validation("contact ID is required")
	}

	params.ServiceType = strings.TrimSpace(params.ServiceType)
	params.Notes = strings.TrimSpace(params.Notes)

	switch params.Priority {
	case "", repository.PriorityNormal, repository.PriorityEmergency:
	default:
		return apperr.Validation(fmt.Sprintf("unknown priority %q", params.Priority))
	}

	return nil
}

func validStatus(status string) bool {
	switch status {
	case repository.StatusNew, repository.StatusScheduled, repository.StatusProgress, repository.StatusDone:
		return true
	}
	return false
}
