// Package conversations provides the chat conversation bounded context:
// the append-only message store, public intake, and read-time thread
// reconstruction.
package conversations

import (
	"hvac_crm_backend/internal/conversations/handler"
	"hvac_crm_backend/internal/conversations/repository"
	"hvac_crm_backend/internal/conversations/service"
	"hvac_crm_backend/internal/events"
	apphttp "hvac_crm_backend/internal/http"
	"hvac_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the conversations bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the conversations module.
func NewModule(pool *pgxpool.Pool, tenants service.TenantChecker, resolver service.IdentityResolver, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, tenants, resolver, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "conversations"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts conversation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public intake endpoint used by the website chat widget (rate limited
	// by the Public group's middleware).
	ctx.Public.POST("/tenants/:tenantID/chat/messages", m.handler.Ingest)

	ctx.Protected.GET("/conversations", m.handler.List)
	ctx.Protected.GET("/conversations/:sessionID", m.handler.Get)
	ctx.Protected.POST("/conversations/:sessionID/replies", m.handler.Reply)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
