package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Message directions.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message is one inbound or outbound communication event. Messages are
// append-only; the only mutation ever applied is the one-time retroactive
// contact link once a session's identity becomes known.
type Message struct {
	ID             uuid.UUID  `db:"id"`
	OrganizationID uuid.UUID  `db:"organization_id"`
	SessionID      string     `db:"session_id"`
	ContactID      *uuid.UUID `db:"contact_id"`
	Direction      string     `db:"direction"`
	Body           string     `db:"body"`
	ServiceType    string     `db:"service_type"`
	SenderName     string     `db:"sender_name"`
	SenderPhone    string     `db:"sender_phone"`
	SenderEmail    string     `db:"sender_email"`
	CreatedAt      time.Time  `db:"created_at"`

	// Joined from the linked contact, when any; nil for unresolved messages.
	ContactName  *string
	ContactPhone *string
	ContactEmail *string
}

// InsertParams contains parameters for appending a message.
type InsertParams struct {
	OrganizationID uuid.UUID
	SessionID      string
	ContactID      *uuid.UUID
	Direction      string
	Body           string
	ServiceType    string
	SenderName     string
	SenderPhone    string
	SenderEmail    string
}

// Reader provides read operations for messages.
type Reader interface {
	// ListByTenant returns the tenant's full message history ordered by
	// session id then timestamp, with best-known contact fields joined in.
	ListByTenant(ctx context.Context, organizationID uuid.UUID) ([]Message, error)
	ListBySession(ctx context.Context, organizationID uuid.UUID, sessionID string) ([]Message, error)
	SessionExists(ctx context.Context, organizationID uuid.UUID, sessionID string) (bool, error)
}

// Writer provides append and link operations for messages.
type Writer interface {
	Insert(ctx context.Context, params InsertParams) (Message, error)
	// LinkSessionContact back-fills the contact reference on every message
	// in the session that has none yet. Returns the number of rows linked.
	LinkSessionContact(ctx context.Context, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error)
	// LinkSessionContactTx is the transaction-scoped variant used by the
	// conversion transaction.
	LinkSessionContactTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error)
}

// Repository combines all message repository operations.
type Repository interface {
	Reader
	Writer
}
