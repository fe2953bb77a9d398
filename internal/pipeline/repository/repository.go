package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hvac_crm_backend/platform/apperr"
)

const (
	leadNotFoundMessage  = "lead not found"
	stageNotFoundMessage = "pipeline stage not found"
)

// defaultStages is the ordered stage list every new tenant starts with.
var defaultStages = []struct {
	Slug string
	Name string
}{
	{StageNewLead, "New Lead"},
	{StageVoicemailLeft, "Voicemail Left"},
	{StageContacted, "Contacted"},
	{StageAppointmentScheduled, "Appointment Scheduled"},
	{StageFollowUp, "Follow Up"},
	{StageSaleClosed, "Sale Closed"},
	{StageNotInterested, "Not Interested"},
}

const leadColumns = `l.id, l.organization_id, l.company_name, l.contact_name, l.phone, l.email, l.stage_id, s.slug, l.created_at, l.updated_at`

const getLeadQuery = `
	SELECT ` + leadColumns + `
	FROM leads l
	JOIN pipeline_stages s ON s.id = l.stage_id
	WHERE l.organization_id = $1 AND l.id = $2`

const listLeadsQuery = `
	SELECT ` + leadColumns + `
	FROM leads l
	JOIN pipeline_stages s ON s.id = l.stage_id
	WHERE l.organization_id = $1
	ORDER BY l.updated_at DESC, l.id ASC`

const setLeadStageQuery = `
	UPDATE leads l
	SET stage_id = $3, updated_at = now()
	FROM pipeline_stages s
	WHERE l.organization_id = $1 AND l.id = $2 AND s.id = $3 AND s.organization_id = $1
	RETURNING l.id, l.organization_id, l.company_name, l.contact_name, l.phone, l.email, l.stage_id, s.slug, l.created_at, l.updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pipeline repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SeedDefaultStages inserts the default stage list for a new tenant.
// Idempotent: re-seeding an already seeded tenant is a no-op.
func (r *Repo) SeedDefaultStages(ctx context.Context, organizationID uuid.UUID) error {
	query := `
		INSERT INTO pipeline_stages (id, organization_id, slug, name, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (organization_id, slug) DO NOTHING`

	for i, stage := range defaultStages {
		if _, err := r.pool.Exec(ctx, query, uuid.New(), organizationID, stage.Slug, stage.Name, i); err != nil {
			return fmt.Errorf("seed stage %s: %w", stage.Slug, err)
		}
	}

	return nil
}

// ListStages returns the tenant's stages in pipeline order.
func (r *Repo) ListStages(ctx context.Context, organizationID uuid.UUID) ([]Stage, error) {
	query := `
		SELECT id, organization_id, slug, name, position
		FROM pipeline_stages
		WHERE organization_id = $1
		ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var results []Stage
	for rows.Next() {
		var stage Stage
		if err := rows.Scan(&stage.ID, &stage.OrganizationID, &stage.Slug, &stage.Name, &stage.Position); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		results = append(results, stage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stages: %w", err)
	}

	return results, nil
}

// GetStageBySlug retrieves one of the tenant's stages by its slug.
func (r *Repo) GetStageBySlug(ctx context.Context, organizationID uuid.UUID, slug string) (Stage, error) {
	query := `
		SELECT id, organization_id, slug, name, position
		FROM pipeline_stages
		WHERE organization_id = $1 AND slug = $2`

	var stage Stage
	err := r.pool.QueryRow(ctx, query, organizationID, slug).Scan(
		&stage.ID, &stage.OrganizationID, &stage.Slug, &stage.Name, &stage.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return Stage{}, fmt.Errorf("get stage by slug: %w", err)
	}

	return stage, nil
}

// CreateLead inserts a lead starting in the new_lead stage.
func (r *Repo) CreateLead(ctx context.Context, organizationID uuid.UUID, params CreateLeadParams) (Lead, error) {
	query := `
		INSERT INTO leads (id, organization_id, company_name, contact_name, phone, email, stage_id)
		SELECT $1, $2, $3, $4, $5, $6, s.id
		FROM pipeline_stages s
		WHERE s.organization_id = $2 AND s.slug = $7
		RETURNING id, organization_id, company_name, contact_name, phone, email, stage_id, created_at, updated_at`

	var lead Lead
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		uuid.New(), organizationID, params.CompanyName, params.ContactName,
		params.Phone, params.Email, StageNewLead,
	).Scan(
		&lead.ID, &lead.OrganizationID, &lead.CompanyName, &lead.ContactName,
		&lead.Phone, &lead.Email, &lead.StageID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(stageNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	lead.StageSlug = StageNewLead
	lead.CreatedAt = createdAt.Format(time.RFC3339)
	lead.UpdatedAt = updatedAt.Format(time.RFC3339)
	return lead, nil
}

// GetLead retrieves a lead with its current stage slug.
func (r *Repo) GetLead(ctx context.Context, organizationID, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, getLeadQuery, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}

	return lead, nil
}

// ListLeads returns the tenant's leads, most recently touched first.
func (r *Repo) ListLeads(ctx context.Context, organizationID uuid.UUID) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, listLeadsQuery, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var results []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return results, nil
}

// SetLeadStage moves a lead to a stage. The stage must belong to the same
// tenant; the store does not otherwise restrict transitions.
func (r *Repo) SetLeadStage(ctx context.Context, organizationID, leadID, stageID uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, setLeadStageQuery, organizationID, leadID, stageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("set lead stage: %w", err)
	}

	return lead, nil
}

// InsertHistory records a stage transition.
func (r *Repo) InsertHistory(ctx context.Context, organizationID, leadID uuid.UUID, fromStage, toStage, note string) error {
	query := `
		INSERT INTO lead_stage_history (id, organization_id, lead_id, from_stage, to_stage, note)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), organizationID, leadID, fromStage, toStage, note); err != nil {
		return fmt.Errorf("insert stage history: %w", err)
	}

	return nil
}

// ListHistory returns a lead's stage transitions, newest first.
func (r *Repo) ListHistory(ctx context.Context, organizationID, leadID uuid.UUID) ([]StageHistoryEntry, error) {
	query := `
		SELECT id, lead_id, from_stage, to_stage, note, created_at
		FROM lead_stage_history
		WHERE organization_id = $1 AND lead_id = $2
		ORDER BY created_at DESC, id ASC`

	rows, err := r.pool.Query(ctx, query, organizationID, leadID)
	if err != nil {
		return nil, fmt.Errorf("list stage history: %w", err)
	}
	defer rows.Close()

	var results []StageHistoryEntry
	for rows.Next() {
		var entry StageHistoryEntry
		var createdAt time.Time
		if err := rows.Scan(&entry.ID, &entry.LeadID, &entry.FromStage, &entry.ToStage, &entry.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan stage history: %w", err)
		}
		entry.CreatedAt = createdAt.Format(time.RFC3339)
		results = append(results, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stage history: %w", err)
	}

	return results, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&lead.ID, &lead.OrganizationID, &lead.CompanyName, &lead.ContactName,
		&lead.Phone, &lead.Email, &lead.StageID, &lead.StageSlug,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	lead.CreatedAt = createdAt.Format(time.RFC3339)
	lead.UpdatedAt = updatedAt.Format(time.RFC3339)
	return lead, nil
}
