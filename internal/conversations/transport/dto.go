package transport

import (
	"time"

	"github.com/google/uuid"
)

// IngestMessageRequest is the public chat-widget payload. Only session id
// and body are required; identity fields arrive progressively as the
// visitor reveals them.
type IngestMessageRequest struct {
	SessionID   string `json:"sessionId" binding:"required"`
	Body        string `json:"body" binding:"required"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ServiceType string `json:"serviceType"`
}

// ReplyRequest is an operator's outbound reply into a session.
type ReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

// MessageResponse is the API representation of one message.
type MessageResponse struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   string     `json:"sessionId"`
	ContactID   *uuid.UUID `json:"contactId,omitempty"`
	Direction   string     `json:"direction"`
	Body        string     `json:"body"`
	ServiceType string     `json:"serviceType,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ContactSnapshotResponse is the best-known identity attached to a thread.
type ContactSnapshotResponse struct {
	ContactID  *uuid.UUID `json:"contactId,omitempty"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	HasDetails bool       `json:"hasDetails"`
}

// ConversationResponse is one reconstructed thread.
type ConversationResponse struct {
	SessionID       string                  `json:"sessionId"`
	Contact         ContactSnapshotResponse `json:"contact"`
	Messages        []MessageResponse       `json:"messages"`
	LastMessageAt   time.Time               `json:"lastMessageAt"`
	LastMessageBody string                  `json:"lastMessageBody"`
}

// ConversationListResponse is the full thread listing for a tenant.
type ConversationListResponse struct {
	Items []ConversationResponse `json:"items"`
	Total int                    `json:"total"`
}

// IngestMessageResponse reports the stored message and whether identity
// resolution attached a contact.
type IngestMessageResponse struct {
	Message   MessageResponse `json:"message"`
	ContactID *uuid.UUID      `json:"contactId,omitempty"`
}
