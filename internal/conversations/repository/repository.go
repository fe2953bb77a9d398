package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const messageColumns = `m.id, m.organization_id, m.session_id, m.contact_id, m.direction, m.body, m.service_type, m.sender_name, m.sender_phone, m.sender_email, m.created_at`

const listByTenantQuery = `
	SELECT ` + messageColumns + `, c.name, c.phone, c.email
	FROM chat_messages m
	LEFT JOIN contacts c ON c.id = m.contact_id AND c.organization_id = m.organization_id
	WHERE m.organization_id = $1
	ORDER BY m.session_id ASC, m.created_at ASC, m.id ASC`

const listBySessionQuery = `
	SELECT ` + messageColumns + `, c.name, c.phone, c.email
	FROM chat_messages m
	LEFT JOIN contacts c ON c.id = m.contact_id AND c.organization_id = m.organization_id
	WHERE m.organization_id = $1 AND m.session_id = $2
	ORDER BY m.created_at ASC, m.id ASC`

// linkSessionQuery back-fills only unresolved messages; resolved history is
// never re-pointed at a different contact.
const linkSessionQuery = `
	UPDATE chat_messages
	SET contact_id = $3
	WHERE organization_id = $1 AND session_id = $2 AND contact_id IS NULL`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new messages repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Insert appends a message to the conversation store.
func (r *Repo) Insert(ctx context.Context, params InsertParams) (Message, error) {
	query := `
		INSERT INTO chat_messages (id, organization_id, session_id, contact_id, direction, body, service_type, sender_name, sender_phone, sender_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, organization_id, session_id, contact_id, direction, body, service_type, sender_name, sender_phone, sender_email, created_at`

	var msg Message
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.OrganizationID, params.SessionID, params.ContactID,
		params.Direction, params.Body, params.ServiceType,
		params.SenderName, params.SenderPhone, params.SenderEmail,
	).Scan(
		&msg.ID, &msg.OrganizationID, &msg.SessionID, &msg.ContactID,
		&msg.Direction, &msg.Body, &msg.ServiceType,
		&msg.SenderName, &msg.SenderPhone, &msg.SenderEmail, &msg.CreatedAt,
	)
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}

	return msg, nil
}

// ListByTenant returns the tenant's full message history, ascending by
// session id then timestamp, with contact fields joined.
func (r *Repo) ListByTenant(ctx context.Context, organizationID uuid.UUID) ([]Message, error) {
	rows, err := r.pool.Query(ctx, listByTenantQuery, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListBySession returns one session's ordered messages.
func (r *Repo) ListBySession(ctx context.Context, organizationID uuid.UUID, sessionID string) ([]Message, error) {
	rows, err := r.pool.Query(ctx, listBySessionQuery, organizationID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// SessionExists checks whether a session has any messages for the tenant.
func (r *Repo) SessionExists(ctx context.Context, organizationID uuid.UUID, sessionID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM chat_messages WHERE organization_id = $1 AND session_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, organizationID, sessionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check session exists: %w", err)
	}

	return exists, nil
}

// LinkSessionContact back-fills the contact reference on the session's
// unresolved messages.
func (r *Repo) LinkSessionContact(ctx context.Context, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error) {
	return linkSessionContact(ctx, r.pool, organizationID, sessionID, contactID)
}

// LinkSessionContactTx runs the same back-fill inside an open transaction.
func (r *Repo) LinkSessionContactTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error) {
	return linkSessionContact(ctx, tx, organizationID, sessionID, contactID)
}

func linkSessionContact(ctx context.Context, q querier, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error) {
	result, err := q.Exec(ctx, linkSessionQuery, organizationID, sessionID, contactID)
	if err != nil {
		return 0, fmt.Errorf("link session contact: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanMessages(rows pgx.Rows) ([]Message, error) {
	var results []Message

	for rows.Next() {
		var msg Message
		err := rows.Scan(
			&msg.ID, &msg.OrganizationID, &msg.SessionID, &msg.ContactID,
			&msg.Direction, &msg.Body, &msg.ServiceType,
			&msg.SenderName, &msg.SenderPhone, &msg.SenderEmail, &msg.CreatedAt,
			&msg.ContactName, &msg.ContactPhone, &msg.ContactEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}

		results = append(results, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return results, nil
}
