package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hvac_crm_backend/internal/conversion/service"
	"hvac_crm_backend/internal/conversion/transport"
	"hvac_crm_backend/platform/httpkit"
)

// IdempotencyKeyHeader carries the client's replay-protection token.
const IdempotencyKeyHeader = "Idempotency-Key"

// Handler handles HTTP requests for conversions.
type Handler struct {
	svc *service.Service
}

// New creates a new conversion handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Convert turns a conversation into a contact and a job.
// POST /api/v1/conversations/:sessionID/convert
func (h *Handler) Convert(c *gin.Context) {
	var req transport.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Convert(c.Request.Context(), tenantID, service.ConvertParams{
		SessionID:      c.Param("sessionID"),
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Notes:          req.Notes,
		ServiceType:    req.ServiceType,
		Priority:       req.Priority,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ConvertResponse{
		ContactID:      result.ContactID.String(),
		ContactCreated: result.ContactCreated,
		JobID:          result.JobID.String(),
	})
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
