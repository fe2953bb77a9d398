package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hvac_crm_backend/internal/jobs/repository"
	"hvac_crm_backend/internal/jobs/service"
	"hvac_crm_backend/internal/jobs/transport"
	"hvac_crm_backend/platform/httpkit"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid job ID"
)

// Handler handles HTTP requests for jobs.
type Handler struct {
	svc *service.Service
}

// New creates a new jobs handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Create creates a job for an existing contact.
// POST /api/v1/jobs
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid contact ID", nil)
		return
	}

	job, err := h.svc.Create(c.Request.Context(), tenantID, service.CreateParams{
		ContactID:   contactID,
		ServiceType: req.ServiceType,
		Priority:    req.Priority,
		Notes:       req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, toResponse(job))
}

// List retrieves the tenant's jobs, emergency first.
// GET /api/v1/jobs
func (h *Handler) List(c *gin.Context) {
	var req transport.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	jobs, err := h.svc.List(c.Request.Context(), tenantID, repository.ListParams{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.JobListResponse{
		Jobs:  make([]transport.JobResponse, 0, len(jobs)),
		Total: len(jobs),
	}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, toResponse(job))
	}
	httpkit.OK(c, resp)
}

// GetByID retrieves a job by ID.
// GET /api/v1/jobs/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	job, err := h.svc.GetByID(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(job))
}

// UpdateStatus advances a job's status.
// PATCH /api/v1/jobs/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	job, err := h.svc.UpdateStatus(c.Request.Context(), tenantID, id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(job))
}

func toResponse(job repository.Job) transport.JobResponse {
	return transport.JobResponse{
		ID:           job.ID.String(),
		ContactID:    job.ContactID.String(),
		ServiceType:  job.ServiceType,
		Status:       job.Status,
		Priority:     job.Priority,
		Notes:        job.Notes,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
		ContactName:  job.ContactName,
		ContactPhone: job.ContactPhone,
	}
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
