// Package service provides chat intake, operator replies, and read-time
// thread reconstruction over the append-only message store.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	contactsvc "hvac_crm_backend/internal/contacts/service"
	"hvac_crm_backend/internal/conversations/repository"
	"hvac_crm_backend/internal/conversations/transport"
	"hvac_crm_backend/internal/events"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
)

// TenantChecker verifies a tenant exists before accepting public intake
// traffic addressed to it. Implemented by the tenants repository.
type TenantChecker interface {
	Exists(ctx context.Context, organizationID uuid.UUID) (bool, error)
}

// IdentityResolver resolves an identity fragment to a contact id.
// Implemented by the contacts service.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, organizationID uuid.UUID, fragment contactsvc.Fragment) (*uuid.UUID, error)
}

// Service provides business logic for conversations.
type Service struct {
	repo     repository.Repository
	tenants  TenantChecker
	resolver IdentityResolver
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new conversations service.
func New(repo repository.Repository, tenants TenantChecker, resolver IdentityResolver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, tenants: tenants, resolver: resolver, bus: bus, log: log}
}

// Ingest appends an inbound chat message and attempts identity resolution
// when the payload carries a phone or email. Anonymous messages are stored
// unresolved; that is the expected default, not an error.
func (s *Service) Ingest(ctx context.Context, organizationID uuid.UUID, req transport.IngestMessageRequest) (transport.IngestMessageResponse, error) {
	exists, err := s.tenants.Exists(ctx, organizationID)
	if err != nil {
		return transport.IngestMessageResponse{}, err
	}
	if !exists {
		return transport.IngestMessageResponse{}, apperr.NotFound("tenant not found")
	}

	sessionID := strings.TrimSpace(req.SessionID)

	msg, err := s.repo.Insert(ctx, repository.InsertParams{
		OrganizationID: organizationID,
		SessionID:      sessionID,
		Direction:      repository.DirectionInbound,
		Body:           req.Body,
		ServiceType:    strings.TrimSpace(req.ServiceType),
		SenderName:     strings.TrimSpace(req.Name),
		SenderPhone:    strings.TrimSpace(req.Phone),
		SenderEmail:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		return transport.IngestMessageResponse{}, err
	}

	// Resolution back-fills this message too: the session's NULL contact
	// references are updated as soon as identity is known.
	contactID, err := s.resolver.ResolveIdentity(ctx, organizationID, contactsvc.Fragment{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		SessionID: sessionID,
	})
	if err != nil {
		return transport.IngestMessageResponse{}, err
	}
	if contactID != nil {
		msg.ContactID = contactID
	}

	s.bus.Publish(ctx, events.InboundMessageReceived{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  organizationID,
		MessageID: msg.ID,
		SessionID: sessionID,
		ContactID: contactID,
	})
	s.log.MessageIngested(organizationID.String(), sessionID, contactID != nil)

	return transport.IngestMessageResponse{
		Message:   toMessageResponse(msg),
		ContactID: contactID,
	}, nil
}

// Reply appends an operator's outbound message to an existing session.
func (s *Service) Reply(ctx context.Context, organizationID uuid.UUID, sessionID string, req transport.ReplyRequest) (transport.MessageResponse, error) {
	exists, err := s.repo.SessionExists(ctx, organizationID, sessionID)
	if err != nil {
		return transport.MessageResponse{}, err
	}
	if !exists {
		return transport.MessageResponse{}, apperr.NotFound("conversation not found")
	}

	msg, err := s.repo.Insert(ctx, repository.InsertParams{
		OrganizationID: organizationID,
		SessionID:      sessionID,
		Direction:      repository.DirectionOutbound,
		Body:           req.Body,
	})
	if err != nil {
		return transport.MessageResponse{}, err
	}

	return toMessageResponse(msg), nil
}

// ListConversations reconstructs all of the tenant's threads,
// most-recent-first.
func (s *Service) ListConversations(ctx context.Context, organizationID uuid.UUID) (transport.ConversationListResponse, error) {
	messages, err := s.repo.ListByTenant(ctx, organizationID)
	if err != nil {
		return transport.ConversationListResponse{}, err
	}

	threads := BuildThreads(messages)

	items := make([]transport.ConversationResponse, len(threads))
	for i, thread := range threads {
		items[i] = toConversationResponse(thread)
	}

	return transport.ConversationListResponse{Items: items, Total: len(items)}, nil
}

// GetConversation reconstructs a single thread.
func (s *Service) GetConversation(ctx context.Context, organizationID uuid.UUID, sessionID string) (transport.ConversationResponse, error) {
	messages, err := s.repo.ListBySession(ctx, organizationID, sessionID)
	if err != nil {
		return transport.ConversationResponse{}, err
	}
	if len(messages) == 0 {
		return transport.ConversationResponse{}, apperr.NotFound("conversation not found")
	}

	threads := BuildThreads(messages)
	return toConversationResponse(threads[0]), nil
}

func toMessageResponse(msg repository.Message) transport.MessageResponse {
	return transport.MessageResponse{
		ID:          msg.ID,
		SessionID:   msg.SessionID,
		ContactID:   msg.ContactID,
		Direction:   msg.Direction,
		Body:        msg.Body,
		ServiceType: msg.ServiceType,
		CreatedAt:   msg.CreatedAt,
	}
}

func toConversationResponse(thread Conversation) transport.ConversationResponse {
	messages := make([]transport.MessageResponse, len(thread.Messages))
	for i, msg := range thread.Messages {
		messages[i] = toMessageResponse(msg)
	}

	return transport.ConversationResponse{
		SessionID: thread.SessionID,
		Contact: transport.ContactSnapshotResponse{
			ContactID:  thread.Contact.ContactID,
			Name:       thread.Contact.Name,
			Phone:      thread.Contact.Phone,
			Email:      thread.Contact.Email,
			HasDetails: thread.Contact.HasDetails,
		},
		Messages:        messages,
		LastMessageAt:   thread.LastMessageAt,
		LastMessageBody: thread.LastMessageBody,
	}
}
