// Package repository stores conversion request claims, the idempotency
// records that make replayed conversions observable and harmless.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// claimQuery inserts the claim row; a conflict means the key was already
// used for this tenant and the conversion is a replay.
const claimQuery = `
	INSERT INTO conversion_requests (id, organization_id, idempotency_key, session_id)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (organization_id, idempotency_key) DO NOTHING`

const completeQuery = `
	UPDATE conversion_requests
	SET contact_id = $3, job_id = $4, completed_at = now()
	WHERE organization_id = $1 AND idempotency_key = $2`

// Repo provides PostgreSQL operations for conversion request claims.
// All operations run inside the caller's conversion transaction.
type Repo struct{}

// New creates a new conversion requests repository.
func New() *Repo {
	return &Repo{}
}

// ClaimTx attempts to claim an idempotency key for the tenant. Returns
// false when the key was already claimed.
func (r *Repo) ClaimTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, key, sessionID string) (bool, error) {
	result, err := tx.Exec(ctx, claimQuery, uuid.New(), organizationID, key, sessionID)
	if err != nil {
		return false, fmt.Errorf("claim conversion request: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// CompleteTx records the outcome of a claimed conversion.
func (r *Repo) CompleteTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, key string, contactID, jobID uuid.UUID) error {
	if _, err := tx.Exec(ctx, completeQuery, organizationID, key, contactID, jobID); err != nil {
		return fmt.Errorf("complete conversion request: %w", err)
	}

	return nil
}
