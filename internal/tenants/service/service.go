package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hvac_crm_backend/internal/events"
	"hvac_crm_backend/internal/tenants/repository"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
)

// Service implements tenant business logic.
type Service struct {
	repo *repository.Repo
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new tenants service.
func New(repo *repository.Repo, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create registers a new tenant and announces it so dependent modules
// (pipeline stage seeding) can react.
func (s *Service) Create(ctx context.Context, name string) (repository.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Tenant{}, apperr.Validation("tenant name is required")
	}

	tenant, err := s.repo.Create(ctx, name)
	if err != nil {
		return repository.Tenant{}, err
	}

	if err := s.bus.PublishSync(ctx, events.TenantCreated{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  tenant.ID,
		Name:      tenant.Name,
	}); err != nil {
		s.log.Error("tenant created event handlers failed", "tenant_id", tenant.ID, "error", err)
	}

	s.log.Info("tenant created", "tenant_id", tenant.ID, "name", tenant.Name)
	return tenant, nil
}

// GetByID retrieves a tenant.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all tenants.
func (s *Service) List(ctx context.Context) ([]repository.Tenant, error) {
	return s.repo.List(ctx)
}

// Exists reports whether a tenant with the given ID is registered.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}
