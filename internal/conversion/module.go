// Package conversion provides the conversion bounded context: the
// transactional hand-off that turns a qualified conversation into a
// contact and a job.
package conversion

import (
	"hvac_crm_backend/internal/conversion/handler"
	"hvac_crm_backend/internal/conversion/repository"
	"hvac_crm_backend/internal/conversion/service"
	"hvac_crm_backend/internal/events"
	apphttp "hvac_crm_backend/internal/http"
	"hvac_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the conversion bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the conversion module. The session
// store, contact merger, and job creator are the tx-capable repositories of
// their owning modules, passed in from the composition root.
func NewModule(pool *pgxpool.Pool, sessions service.SessionStore, contacts service.ContactMerger, jobs service.JobCreator, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(pool, repository.New(), sessions, contacts, jobs, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "conversion"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the conversion route on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/conversations/:sessionID/convert", m.handler.Convert)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
