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

const tenantNotFoundMessage = "tenant not found"

// Tenant is one HVAC company using the platform; the unit of data isolation.
type Tenant struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt string    `db:"created_at"`
}

// Repo provides PostgreSQL operations for tenants.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tenants repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new tenant.
func (r *Repo) Create(ctx context.Context, name string) (Tenant, error) {
	query := `
		INSERT INTO organizations (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at`

	var tenant Tenant
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, query, uuid.New(), name).Scan(&tenant.ID, &tenant.Name, &createdAt)
	if err != nil {
		return Tenant{}, fmt.Errorf("create tenant: %w", err)
	}

	tenant.CreatedAt = createdAt.Format(time.RFC3339)
	return tenant, nil
}

// GetByID retrieves a tenant by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Tenant, error) {
	query := `SELECT id, name, created_at FROM organizations WHERE id = $1`

	var tenant Tenant
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.Name, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, apperr.NotFound(tenantNotFoundMessage)
		}
		return Tenant{}, fmt.Errorf("get tenant by id: %w", err)
	}

	tenant.CreatedAt = createdAt.Format(time.RFC3339)
	return tenant, nil
}

// List retrieves all tenants ordered by name.
func (r *Repo) List(ctx context.Context) ([]Tenant, error) {
	query := `SELECT id, name, created_at FROM organizations ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var results []Tenant
	for rows.Next() {
		var tenant Tenant
		var createdAt time.Time
		if err := rows.Scan(&tenant.ID, &tenant.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenant.CreatedAt = createdAt.Format(time.RFC3339)
		results = append(results, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}

	return results, nil
}

// Exists checks if a tenant exists by ID.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check tenant exists: %w", err)
	}

	return exists, nil
}
