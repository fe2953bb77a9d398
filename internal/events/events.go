// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"hvac_crm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Tenant Domain Events
// =============================================================================

// TenantCreated is published when a new company (tenant) is registered.
type TenantCreated struct {
	BaseEvent
	TenantID uuid.UUID `json:"tenantId"`
	Name     string    `json:"name"`
}

func (e TenantCreated) EventName() string { return "tenants.tenant.created" }

// =============================================================================
// Intake Domain Events
// =============================================================================

// InboundMessageReceived is published when the chat widget delivers a message.
type InboundMessageReceived struct {
	BaseEvent
	TenantID  uuid.UUID  `json:"tenantId"`
	MessageID uuid.UUID  `json:"messageId"`
	SessionID string     `json:"sessionId"`
	ContactID *uuid.UUID `json:"contactId,omitempty"`
}

func (e InboundMessageReceived) EventName() string { return "conversations.message.received" }

// ContactResolved is published when an identity fragment resolves to a contact.
type ContactResolved struct {
	BaseEvent
	TenantID  uuid.UUID `json:"tenantId"`
	ContactID uuid.UUID `json:"contactId"`
	SessionID string    `json:"sessionId,omitempty"`
	Created   bool      `json:"created"`
}

func (e ContactResolved) EventName() string { return "contacts.contact.resolved" }

// ConversationConverted is published after a conversion transaction commits.
type ConversationConverted struct {
	BaseEvent
	TenantID  uuid.UUID `json:"tenantId"`
	SessionID string    `json:"sessionId"`
	ContactID uuid.UUID `json:"contactId"`
	JobID     uuid.UUID `json:"jobId"`
}

func (e ConversationConverted) EventName() string { return "conversion.conversation.converted" }

// =============================================================================
// Pipeline Domain Events
// =============================================================================

// LeadStageChanged is published when a lead moves to a new pipeline stage.
type LeadStageChanged struct {
	BaseEvent
	TenantID  uuid.UUID `json:"tenantId"`
	LeadID    uuid.UUID `json:"leadId"`
	FromStage string    `json:"fromStage"`
	ToStage   string    `json:"toStage"`
	ChangedAt time.Time `json:"changedAt"`
}

func (e LeadStageChanged) EventName() string { return "pipeline.lead.stage_changed" }
