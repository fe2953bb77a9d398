package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hvac_crm_backend/internal/conversations/service"
	"hvac_crm_backend/internal/conversations/transport"
	"hvac_crm_backend/platform/httpkit"
)

const (
	msgInvalidRequest  = "invalid request"
	msgInvalidTenantID = "invalid tenant ID"
)

// Handler handles HTTP requests for conversations.
type Handler struct {
	svc *service.Service
}

// New creates a new conversations handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Ingest accepts an inbound chat-widget message.
// POST /public/tenants/:tenantID/chat/messages
func (h *Handler) Ingest(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantID"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, msgInvalidTenantID, nil)
		return
	}

	var req transport.IngestMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Ingest(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Reply appends an operator's outbound message.
// POST /api/v1/conversations/:sessionID/replies
func (h *Handler) Reply(c *gin.Context) {
	sessionID := c.Param("sessionID")
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	var req transport.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Reply(c.Request.Context(), tenantID, sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List reconstructs all threads for the operator's tenant.
// GET /api/v1/conversations
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListConversations(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get reconstructs one thread.
// GET /api/v1/conversations/:sessionID
func (h *Handler) Get(c *gin.Context) {
	sessionID := c.Param("sessionID")
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetConversation(c.Request.Context(), tenantID, sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
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
