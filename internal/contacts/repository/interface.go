package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Contact represents a resolved customer/prospect known to a tenant.
// Phone is the natural dedup key when present; at most one contact exists
// per (organization, phone).
type Contact struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Name           string    `db:"name"`
	Phone          *string   `db:"phone"`
	Email          *string   `db:"email"`
	Notes          string    `db:"notes"`
	Street         *string   `db:"street"`
	City           *string   `db:"city"`
	State          *string   `db:"state"`
	PostalCode     *string   `db:"postal_code"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// MergeParams carries an incoming identity fragment to merge into the store.
// Phone and Email must already be normalized by the caller; nil means absent.
type MergeParams struct {
	OrganizationID uuid.UUID
	Name           string
	Phone          *string
	Email          *string
	Notes          string
	Street         *string
	City           *string
	State          *string
	PostalCode     *string
}

// ListParams contains filters for listing contacts.
type ListParams struct {
	OrganizationID uuid.UUID
	Search         string
	Limit          int
	Offset         int
}

// Reader provides read operations for contacts.
type Reader interface {
	GetByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (Contact, error)
	GetByPhone(ctx context.Context, organizationID uuid.UUID, phone string) (Contact, error)
	GetByEmail(ctx context.Context, organizationID uuid.UUID, email string) (Contact, error)
	List(ctx context.Context, params ListParams) ([]Contact, int, error)
}

// Writer provides merge/upsert operations for contacts.
type Writer interface {
	// UpsertMergeByPhone atomically inserts or merges a contact keyed on
	// (organization, phone). Returns the merged contact and whether a new
	// row was created.
	UpsertMergeByPhone(ctx context.Context, params MergeParams) (Contact, bool, error)
	// UpsertMergeByPhoneTx is the transaction-scoped variant used by the
	// conversion transaction.
	UpsertMergeByPhoneTx(ctx context.Context, tx pgx.Tx, params MergeParams) (Contact, bool, error)
	// MergeInto merges a fragment into an existing contact by id.
	MergeInto(ctx context.Context, organizationID uuid.UUID, id uuid.UUID, params MergeParams) (Contact, error)
	// Create inserts a new contact (used for email-only fragments).
	Create(ctx context.Context, params MergeParams) (Contact, error)
}

// Repository combines all contact repository operations.
type Repository interface {
	Reader
	Writer
}
