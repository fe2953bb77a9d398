// Package pipeline provides the sales pipeline bounded context: per-tenant
// stage lists, leads, stage history, and the advisory quick-action engine.
package pipeline

import (
	"context"

	"hvac_crm_backend/internal/events"
	apphttp "hvac_crm_backend/internal/http"
	"hvac_crm_backend/internal/pipeline/handler"
	"hvac_crm_backend/internal/pipeline/repository"
	"hvac_crm_backend/internal/pipeline/service"
	"hvac_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the pipeline bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the pipeline module, subscribing to
// TenantCreated so every new tenant gets the default stage list.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc)

	bus.Subscribe((events.TenantCreated{}).EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		created, ok := e.(events.TenantCreated)
		if !ok {
			return nil
		}
		return svc.SeedStages(ctx, created.TenantID)
	}))

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pipeline"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts pipeline routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/pipeline/stages", m.handler.ListStages)
	ctx.Protected.POST("/leads", m.handler.CreateLead)
	ctx.Protected.GET("/leads", m.handler.ListLeads)
	ctx.Protected.GET("/leads/:id", m.handler.GetLead)
	ctx.Protected.GET("/leads/:id/quick-actions", m.handler.QuickActions)
	ctx.Protected.GET("/leads/:id/history", m.handler.History)
	ctx.Protected.POST("/leads/:id/stage", m.handler.ChangeStage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
