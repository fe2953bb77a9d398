package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hvac_crm_backend/internal/pipeline/repository"
	"hvac_crm_backend/internal/pipeline/service"
	"hvac_crm_backend/internal/pipeline/transport"
	"hvac_crm_backend/platform/httpkit"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid lead ID"
)

// Handler handles HTTP requests for the sales pipeline.
type Handler struct {
	svc *service.Service
}

// New creates a new pipeline handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListStages returns the tenant's pipeline stages in order.
// GET /api/v1/pipeline/stages
func (h *Handler) ListStages(c *gin.Context) {
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	stages, err := h.svc.ListStages(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := make([]transport.StageResponse, 0, len(stages))
	for _, s := range stages {
		resp = append(resp, transport.StageResponse{
			ID:       s.ID.String(),
			Slug:     s.Slug,
			Name:     s.Name,
			Position: s.Position,
		})
	}
	httpkit.OK(c, resp)
}

// CreateLead registers a new lead.
// POST /api/v1/leads
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	lead, err := h.svc.CreateLead(c.Request.Context(), tenantID, repository.CreateLeadParams{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Phone:       optional(req.Phone),
		Email:       optional(req.Email),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, toResponse(lead))
}

// ListLeads returns the tenant's leads.
// GET /api/v1/leads
func (h *Handler) ListLeads(c *gin.Context) {
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	leads, err := h.svc.ListLeads(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.LeadListResponse{
		Leads: make([]transport.LeadResponse, 0, len(leads)),
		Total: len(leads),
	}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, toResponse(lead))
	}
	httpkit.OK(c, resp)
}

// GetLead retrieves a lead by ID.
// GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	id, tenantID, ok := leadScope(c)
	if !ok {
		return
	}

	lead, err := h.svc.GetLead(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(lead))
}

// QuickActions returns the recommended next transitions for a lead.
// GET /api/v1/leads/:id/quick-actions
func (h *Handler) QuickActions(c *gin.Context) {
	id, tenantID, ok := leadScope(c)
	if !ok {
		return
	}

	actions, err := h.svc.QuickActions(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.QuickActionsResponse{Actions: make([]transport.QuickActionResponse, 0, len(actions))}
	for _, a := range actions {
		resp.Actions = append(resp.Actions, transport.QuickActionResponse{
			TargetStage: a.TargetStage,
			Label:       a.Label,
		})
	}
	httpkit.OK(c, resp)
}

// ChangeStage moves a lead to another stage via the general selector.
// POST /api/v1/leads/:id/stage
func (h *Handler) ChangeStage(c *gin.Context) {
	id, tenantID, ok := leadScope(c)
	if !ok {
		return
	}
	var req transport.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.ChangeStage(c.Request.Context(), tenantID, id, strings.TrimSpace(req.Stage), strings.TrimSpace(req.Note))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(lead))
}

// History returns a lead's stage transitions, newest first.
// GET /api/v1/leads/:id/history
func (h *Handler) History(c *gin.Context) {
	id, tenantID, ok := leadScope(c)
	if !ok {
		return
	}

	entries, err := h.svc.ListHistory(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := make([]transport.StageHistoryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, transport.StageHistoryResponse{
			FromStage: e.FromStage,
			ToStage:   e.ToStage,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	httpkit.OK(c, resp)
}

func toResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:          lead.ID.String(),
		CompanyName: lead.CompanyName,
		ContactName: lead.ContactName,
		Phone:       lead.Phone,
		Email:       lead.Email,
		Stage:       lead.StageSlug,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func leadScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, uuid.UUID{}, false
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return uuid.UUID{}, uuid.UUID{}, false
	}
	return id, tenantID, true
}

func mustGetTenantID(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, false
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusBadRequest, "tenant ID is required", nil)
		return uuid.UUID{}, false
	}
	return *tenantID, true
}
