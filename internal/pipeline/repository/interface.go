package repository

import (
	"context"

	"github.com/google/uuid"
)

// Default stage slugs. Every tenant is seeded with this ordered list at
// creation time; operators may rename stages later but the slugs are stable.
const (
	StageNewLead              = "new_lead"
	StageVoicemailLeft        = "voicemail_left"
	StageContacted            = "contacted"
	StageAppointmentScheduled = "appointment_scheduled"
	StageFollowUp             = "follow_up"
	StageSaleClosed           = "sale_closed"
	StageNotInterested        = "not_interested"
)

// Stage is one step in a tenant's sales pipeline.
type Stage struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Slug           string    `db:"slug"`
	Name           string    `db:"name"`
	Position       int       `db:"position"`
}

// Lead is a sales-tracking record for one prospective customer.
type Lead struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	CompanyName    string    `db:"company_name"`
	ContactName    string    `db:"contact_name"`
	Phone          *string   `db:"phone"`
	Email          *string   `db:"email"`
	StageID        uuid.UUID `db:"stage_id"`
	StageSlug      string    `db:"stage_slug"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// StageHistoryEntry records one stage transition of a lead.
type StageHistoryEntry struct {
	ID        uuid.UUID `db:"id"`
	LeadID    uuid.UUID `db:"lead_id"`
	FromStage string    `db:"from_stage"`
	ToStage   string    `db:"to_stage"`
	Note      string    `db:"note"`
	CreatedAt string    `db:"created_at"`
}

// CreateLeadParams holds fields for creating a lead.
type CreateLeadParams struct {
	CompanyName string
	ContactName string
	Phone       *string
	Email       *string
}

// StageReader provides read operations for pipeline stages.
type StageReader interface {
	ListStages(ctx context.Context, organizationID uuid.UUID) ([]Stage, error)
	GetStageBySlug(ctx context.Context, organizationID uuid.UUID, slug string) (Stage, error)
}

// StageWriter provides write operations for pipeline stages.
type StageWriter interface {
	SeedDefaultStages(ctx context.Context, organizationID uuid.UUID) error
}

// LeadReader provides read operations for leads.
type LeadReader interface {
	GetLead(ctx context.Context, organizationID, id uuid.UUID) (Lead, error)
	ListLeads(ctx context.Context, organizationID uuid.UUID) ([]Lead, error)
	ListHistory(ctx context.Context, organizationID, leadID uuid.UUID) ([]StageHistoryEntry, error)
}

// LeadWriter provides write operations for leads.
type LeadWriter interface {
	CreateLead(ctx context.Context, organizationID uuid.UUID, params CreateLeadParams) (Lead, error)
	SetLeadStage(ctx context.Context, organizationID, leadID, stageID uuid.UUID) (Lead, error)
	InsertHistory(ctx context.Context, organizationID, leadID uuid.UUID, fromStage, toStage, note string) error
}

// Repository combines all pipeline storage operations.
type Repository interface {
	StageReader
	StageWriter
	LeadReader
	LeadWriter
}
