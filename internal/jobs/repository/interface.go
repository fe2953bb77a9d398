package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Job status state machine. Transitions are linear: new → scheduled →
// progress → done. The service layer enforces the transition table.
const (
	StatusNew       = "new"
	StatusScheduled = "scheduled"
	StatusProgress  = "progress"
	StatusDone      = "done"
)

// Priority tiers. Emergency jobs sort before normal jobs in listings.
const (
	PriorityNormal    = "normal"
	PriorityEmergency = "emergency"
)

// DefaultServiceType is used when a job is created without an explicit type.
const DefaultServiceType = "custom"

// Job is a unit of requested work linked to a contact.
type Job struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	ContactID      uuid.UUID `db:"contact_id"`
	ServiceType    string    `db:"service_type"`
	Status         string    `db:"status"`
	Priority       string    `db:"priority"`
	Notes          string    `db:"notes"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
	ContactName    *string   `db:"contact_name"`
	ContactPhone   *string   `db:"contact_phone"`
}

// InsertParams holds the fields needed to create a job.
type InsertParams struct {
	ContactID   uuid.UUID
	ServiceType string
	Priority    string
	Notes       string
}

// ListParams holds filters for listing jobs.
type ListParams struct {
	Status string
	Limit  int
	Offset int
}

// Reader provides read operations for jobs.
type Reader interface {
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (Job, error)
	List(ctx context.Context, organizationID uuid.UUID, params ListParams) ([]Job, error)
}

// Writer provides write operations for jobs.
type Writer interface {
	Insert(ctx context.Context, organizationID uuid.UUID, params InsertParams) (Job, error)
	InsertTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, params InsertParams) (Job, error)
	UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) (Job, error)
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
