package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hvac_crm_backend/internal/tenants/repository"
	"hvac_crm_backend/internal/tenants/service"
	"hvac_crm_backend/internal/tenants/transport"
	"hvac_crm_backend/platform/httpkit"
)

// Handler handles HTTP requests for tenant administration.
type Handler struct {
	svc *service.Service
}

// New creates a new tenants handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Create registers a new tenant.
// POST /api/v1/admin/tenants
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	tenant, err := h.svc.Create(c.Request.Context(), req.Name)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, toResponse(tenant))
}

// List retrieves all tenants.
// GET /api/v1/admin/tenants
func (h *Handler) List(c *gin.Context) {
	tenants, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.TenantListResponse{
		Tenants: make([]transport.TenantResponse, 0, len(tenants)),
		Total:   len(tenants),
	}
	for _, t := range tenants {
		resp.Tenants = append(resp.Tenants, toResponse(t))
	}
	httpkit.OK(c, resp)
}

// GetByID retrieves a tenant by ID.
// GET /api/v1/admin/tenants/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid tenant ID", nil)
		return
	}

	tenant, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(tenant))
}

func toResponse(t repository.Tenant) transport.TenantResponse {
	return transport.TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}
