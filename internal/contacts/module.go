// Package contacts provides the identity store bounded context: durable,
// phone-deduplicated contacts per tenant with upsert-merge resolution.
package contacts

import (
	"hvac_crm_backend/internal/contacts/handler"
	"hvac_crm_backend/internal/contacts/repository"
	"hvac_crm_backend/internal/contacts/service"
	"hvac_crm_backend/internal/events"
	apphttp "hvac_crm_backend/internal/http"
	"hvac_crm_backend/platform/logger"
	"hvac_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the contacts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the contacts module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, val, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contacts"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts contact routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/contacts", m.handler.List)
	ctx.Protected.GET("/contacts/:id", m.handler.GetByID)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
