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

const contactNotFoundMessage = "contact not found"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so merge statements
// can run standalone or inside the conversion transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const contactColumns = `id, organization_id, name, phone, email, notes, street, city, state, postal_code, created_at, updated_at`

// upsertMergeQuery implements the deterministic merge policy at the storage
// layer so two concurrent first-contact messages for the same phone cannot
// create duplicate contacts: name latest-write-wins (empty never overwrites),
// email first-write-wins, notes append-only.
const upsertMergeQuery = `
	INSERT INTO contacts (id, organization_id, name, phone, email, notes, street, city, state, postal_code)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (organization_id, phone) WHERE phone IS NOT NULL DO UPDATE SET
		name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE contacts.name END,
		email = COALESCE(contacts.email, EXCLUDED.email),
		notes = CASE
			WHEN contacts.notes = '' THEN EXCLUDED.notes
			WHEN EXCLUDED.notes = '' THEN contacts.notes
			ELSE contacts.notes || E'\n\n' || EXCLUDED.notes
		END,
		street = COALESCE(contacts.street, EXCLUDED.street),
		city = COALESCE(contacts.city, EXCLUDED.city),
		state = COALESCE(contacts.state, EXCLUDED.state),
		postal_code = COALESCE(contacts.postal_code, EXCLUDED.postal_code),
		updated_at = now()
	RETURNING ` + contactColumns + `, (xmax = 0) AS created`

const mergeIntoQuery = `
	UPDATE contacts SET
		name = CASE WHEN $3 <> '' THEN $3 ELSE name END,
		email = COALESCE(email, $4),
		notes = CASE
			WHEN notes = '' THEN $5
			WHEN $5 = '' THEN notes
			ELSE notes || E'\n\n' || $5
		END,
		updated_at = now()
	WHERE id = $2 AND organization_id = $1
	RETURNING ` + contactColumns

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contacts repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a contact by its ID.
func (r *Repo) GetByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $2 AND organization_id = $1`

	return r.scanOne(ctx, r.pool, query, "get contact by id", organizationID, id)
}

// GetByPhone retrieves a contact by its normalized phone number.
func (r *Repo) GetByPhone(ctx context.Context, organizationID uuid.UUID, phoneNumber string) (Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE organization_id = $1 AND phone = $2`

	return r.scanOne(ctx, r.pool, query, "get contact by phone", organizationID, phoneNumber)
}

// GetByEmail retrieves a contact by email.
func (r *Repo) GetByEmail(ctx context.Context, organizationID uuid.UUID, email string) (Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE organization_id = $1 AND email = $2
		ORDER BY created_at ASC
		LIMIT 1`

	return r.scanOne(ctx, r.pool, query, "get contact by email", organizationID, email)
}

// List retrieves contacts for a tenant with optional name/phone/email search.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Contact, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	countQuery := `
		SELECT COUNT(*)
		FROM contacts
		WHERE organization_id = $1
			AND ($2::text IS NULL OR name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.OrganizationID, searchParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE organization_id = $1
			AND ($2::text IS NULL OR name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)
		ORDER BY updated_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, params.OrganizationID, searchParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	results, err := scanContacts(rows)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// UpsertMergeByPhone atomically inserts or merges a contact keyed on
// (organization, phone).
func (r *Repo) UpsertMergeByPhone(ctx context.Context, params MergeParams) (Contact, bool, error) {
	return upsertMergeByPhone(ctx, r.pool, params)
}

// UpsertMergeByPhoneTx runs the same merge inside an open transaction.
func (r *Repo) UpsertMergeByPhoneTx(ctx context.Context, tx pgx.Tx, params MergeParams) (Contact, bool, error) {
	return upsertMergeByPhone(ctx, tx, params)
}

func upsertMergeByPhone(ctx context.Context, q querier, params MergeParams) (Contact, bool, error) {
	var contact Contact
	var createdAt, updatedAt time.Time
	var created bool

	err := q.QueryRow(ctx, upsertMergeQuery,
		uuid.New(), params.OrganizationID, params.Name, params.Phone, params.Email, params.Notes,
		params.Street, params.City, params.State, params.PostalCode,
	).Scan(
		&contact.ID, &contact.OrganizationID, &contact.Name, &contact.Phone, &contact.Email, &contact.Notes,
		&contact.Street, &contact.City, &contact.State, &contact.PostalCode,
		&createdAt, &updatedAt, &created,
	)
	if err != nil {
		return Contact{}, false, fmt.Errorf("upsert merge contact: %w", err)
	}

	contact.CreatedAt = createdAt.Format(time.RFC3339)
	contact.UpdatedAt = updatedAt.Format(time.RFC3339)

	return contact, created, nil
}

// MergeInto merges a fragment into an existing contact by id.
func (r *Repo) MergeInto(ctx context.Context, organizationID uuid.UUID, id uuid.UUID, params MergeParams) (Contact, error) {
	var contact Contact
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, mergeIntoQuery,
		organizationID, id, params.Name, params.Email, params.Notes,
	).Scan(
		&contact.ID, &contact.OrganizationID, &contact.Name, &contact.Phone, &contact.Email, &contact.Notes,
		&contact.Street, &contact.City, &contact.State, &contact.PostalCode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, apperr.NotFound(contactNotFoundMessage)
		}
		return Contact{}, fmt.Errorf("merge into contact: %w", err)
	}

	contact.CreatedAt = createdAt.Format(time.RFC3339)
	contact.UpdatedAt = updatedAt.Format(time.RFC3339)

	return contact, nil
}

// Create inserts a new contact. Used for email-only fragments where the
// phone-keyed upsert path does not apply.
func (r *Repo) Create(ctx context.Context, params MergeParams) (Contact, error) {
	query := `
		INSERT INTO contacts (id, organization_id, name, phone, email, notes, street, city, state, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + contactColumns

	var contact Contact
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.OrganizationID, params.Name, params.Phone, params.Email, params.Notes,
		params.Street, params.City, params.State, params.PostalCode,
	).Scan(
		&contact.ID, &contact.OrganizationID, &contact.Name, &contact.Phone, &contact.Email, &contact.Notes,
		&contact.Street, &contact.City, &contact.State, &contact.PostalCode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Contact{}, fmt.Errorf("create contact: %w", err)
	}

	contact.CreatedAt = createdAt.Format(time.RFC3339)
	contact.UpdatedAt = updatedAt.Format(time.RFC3339)

	return contact, nil
}

func (r *Repo) scanOne(ctx context.Context, q querier, query, op string, args ...any) (Contact, error) {
	var contact Contact
	var createdAt, updatedAt time.Time

	err := q.QueryRow(ctx, query, args...).Scan(
		&contact.ID, &contact.OrganizationID, &contact.Name, &contact.Phone, &contact.Email, &contact.Notes,
		&contact.Street, &contact.City, &contact.State, &contact.PostalCode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, apperr.NotFound(contactNotFoundMessage)
		}
		return Contact{}, fmt.Errorf("%s: %w", op, err)
	}

	contact.CreatedAt = createdAt.Format(time.RFC3339)
	contact.UpdatedAt = updatedAt.Format(time.RFC3339)

	return contact, nil
}

func scanContacts(rows pgx.Rows) ([]Contact, error) {
	var results []Contact

	for rows.Next() {
		var contact Contact
		var createdAt, updatedAt time.Time

		err := rows.Scan(
			&contact.ID, &contact.OrganizationID, &contact.Name, &contact.Phone, &contact.Email, &contact.Notes,
			&contact.Street, &contact.City, &contact.State, &contact.PostalCode,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}

		contact.CreatedAt = createdAt.Format(time.RFC3339)
		contact.UpdatedAt = updatedAt.Format(time.RFC3339)

		results = append(results, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	return results, nil
}
