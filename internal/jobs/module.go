// Package jobs provides the work-order bounded context: units of requested
// work linked to contacts, with a linear status state machine and an
// emergency priority tier.
package jobs

import (
	apphttp "hvac_crm_backend/internal/http"
	"hvac_crm_backend/internal/jobs/handler"
	"hvac_crm_backend/internal/jobs/repository"
	"hvac_crm_backend/internal/jobs/service"
	"hvac_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the jobs bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the jobs module with all its dependencies.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "jobs"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts job routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/jobs", m.handler.Create)
	ctx.Protected.GET("/jobs", m.handler.List)
	ctx.Protected.GET("/jobs/:id", m.handler.GetByID)
	ctx.Protected.PATCH("/jobs/:id/status", m.handler.UpdateStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
