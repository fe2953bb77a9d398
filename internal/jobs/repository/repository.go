package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hvac_crm_backend/platform/apperr"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const jobNotFoundMessage = "job not found"

const jobColumns = `j.id, j.organization_id, j.contact_id, j.service_type, j.status, j.priority, j.notes, j.created_at, j.updated_at`

const insertQuery = `
	INSERT INTO jobs (id, organization_id, contact_id, service_type, status, priority, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, organization_id, contact_id, service_type, status, priority, notes, created_at, updated_at`

const getByIDQuery = `
	SELECT ` + jobColumns + `, c.name, c.phone
	FROM jobs j
	LEFT JOIN contacts c ON c.id = j.contact_id AND c.organization_id = j.organization_id
	WHERE j.organization_id = $1 AND j.id = $2`

// Emergency jobs surface first regardless of age.
const listQuery = `
	SELECT ` + jobColumns + `, c.name, c.phone
	FROM jobs j
	LEFT JOIN contacts c ON c.id = j.contact_id AND c.organization_id = j.organization_id
	WHERE j.organization_id = $1 AND ($2 = '' OR j.status = $2)
	ORDER BY CASE WHEN j.priority = 'emergency' THEN 0 ELSE 1 END, j.created_at DESC
	LIMIT $3 OFFSET $4`

const updateStatusQuery = `
	UPDATE jobs
	SET status = $3, updated_at = now()
	WHERE organization_id = $1 AND id = $2
	RETURNING id, organization_id, contact_id, service_type, status, priority, notes, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new jobs repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Insert creates a job for the tenant.
func (r *Repo) Insert(ctx context.Context, organizationID uuid.UUID, params InsertParams) (Job, error) {
	return insertJob(ctx, r.pool, organizationID, params)
}

// InsertTx creates a job inside an open transaction.
func (r *Repo) InsertTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, params InsertParams) (Job, error) {
	return insertJob(ctx, tx, organizationID, params)
}

func insertJob(ctx context.Context, q querier, organizationID uuid.UUID, params InsertParams) (Job, error) {
	serviceType := params.ServiceType
	if serviceType == "" {
		serviceType = DefaultServiceType
	}
	priority := params.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	row := q.QueryRow(ctx, insertQuery,
		uuid.New(), organizationID, params.ContactID,
		serviceType, StatusNew, priority, params.Notes,
	)

	job, err := scanJob(row, false)
	if err != nil {
		return Job{}, fmt.Errorf("insert job: %w", err)
	}

	return job, nil
}

// GetByID retrieves a job by ID with contact fields joined.
func (r *Repo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (Job, error) {
	row := r.pool.QueryRow(ctx, getByIDQuery, organizationID, id)

	job, err := scanJob(row, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, apperr.NotFound(jobNotFoundMessage)
		}
		return Job{}, fmt.Errorf("get job by id: %w", err)
	}

	return job, nil
}

// List retrieves the tenant's jobs, emergency first, then newest first.
func (r *Repo) List(ctx context.Context, organizationID uuid.UUID, params ListParams) ([]Job, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, listQuery, organizationID, params.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var results []Job
	for rows.Next() {
		job, err := scanJob(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		results = append(results, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	return results, nil
}

// UpdateStatus sets a job's status. The service layer validates the
// transition before calling this.
func (r *Repo) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) (Job, error) {
	row := r.pool.QueryRow(ctx, updateStatusQuery, organizationID, id, status)

	job, err := scanJob(row, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, apperr.NotFound(jobNotFoundMessage)
		}
		return Job{}, fmt.Errorf("update job status: %w", err)
	}

	return job, nil
}

func scanJob(row pgx.Row, withContact bool) (Job, error) {
	var job Job
	var createdAt, updatedAt time.Time

	dest := []any{
		&job.ID, &job.OrganizationID, &job.ContactID,
		&job.ServiceType, &job.Status, &job.Priority, &job.Notes,
		&createdAt, &updatedAt,
	}
	if withContact {
		dest = append(dest, &job.ContactName, &job.ContactPhone)
	}

	if err := row.Scan(dest...); err != nil {
		return Job{}, err
	}

	job.CreatedAt = createdAt.Format(time.RFC3339)
	job.UpdatedAt = updatedAt.Format(time.RFC3339)
	return job, nil
}
