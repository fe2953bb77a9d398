// Package service implements the conversion transaction: turning a
// conversation into a contact and a job in one all-or-nothing unit of work.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	contactrepo "hvac_crm_backend/internal/contacts/repository"
	contactsvc "hvac_crm_backend/internal/contacts/service"
	"hvac_crm_backend/internal/events"
	jobrepo "hvac_crm_backend/internal/jobs/repository"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
)

// ConvertParams is the operator's input for converting a conversation.
type ConvertParams struct {
	SessionID      string
	Name           string
	Phone          string
	Email          string
	Notes          string
	ServiceType    string
	Priority       string
	IdempotencyKey string
}

// Result is the outcome of a committed conversion.
type Result struct {
	ContactID      uuid.UUID
	ContactCreated bool
	JobID          uuid.UUID
}

// Beginner opens transactions; satisfied by *pgxpool.Pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ClaimStore records idempotency claims inside the conversion transaction.
type ClaimStore interface {
	ClaimTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, key, sessionID string) (bool, error)
	CompleteTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, key string, contactID, jobID uuid.UUID) error
}

// SessionStore is the slice of the conversations store the conversion
// transaction needs.
type SessionStore interface {
	SessionExists(ctx context.Context, organizationID uuid.UUID, sessionID string) (bool, error)
	LinkSessionContactTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error)
}

// ContactMerger is the transaction-scoped upsert-merge of the identity store.
type ContactMerger interface {
	UpsertMergeByPhoneTx(ctx context.Context, tx pgx.Tx, params contactrepo.MergeParams) (contactrepo.Contact, bool, error)
}

// JobCreator inserts jobs inside an open transaction.
type JobCreator interface {
	InsertTx(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, params jobrepo.InsertParams) (jobrepo.Job, error)
}

// Service orchestrates the conversion transaction.
type Service struct {
	db       Beginner
	claims   ClaimStore
	sessions SessionStore
	contacts ContactMerger
	jobs     JobCreator
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new conversion service.
func New(db Beginner, claims ClaimStore, sessions SessionStore, contacts ContactMerger, jobs JobCreator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		db:       db,
		claims:   claims,
		sessions: sessions,
		contacts: contacts,
		jobs:     jobs,
		bus:      bus,
		log:      log,
	}
}

// Convert runs the conversion transaction. All validation happens before
// any mutation; once the transaction opens, every step succeeds or the
// whole conversion rolls back and the conversation is untouched.
func (s *Service) Convert(ctx context.Context, organizationID uuid.UUID, params ConvertParams) (Result, error) {
	fragment, err := validate(params)
	if err != nil {
		return Result{}, err
	}

	exists, err := s.sessions.SessionExists(ctx, organizationID, params.SessionID)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, apperr.NotFound("conversation not found")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("begin conversion transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	key := strings.TrimSpace(params.IdempotencyKey)
	if key != "" {
		claimed, err := s.claims.ClaimTx(ctx, tx, organizationID, key, params.SessionID)
		if err != nil {
			return Result{}, err
		}
		if !claimed {
			return Result{}, apperr.Conflict("conversion already processed for this idempotency key")
		}
	}

	phoneValue := fragment.Phone
	mergeParams := contactrepo.MergeParams{
		OrganizationID: organizationID,
		Name:           fragment.Name,
		Phone:          &phoneValue,
		Notes:          fragment.Notes,
	}
	if fragment.Email != "" {
		emailValue := fragment.Email
		mergeParams.Email = &emailValue
	}

	contact, created, err := s.contacts.UpsertMergeByPhoneTx(ctx, tx, mergeParams)
	if err != nil {
		return Result{}, err
	}

	if _, err := s.sessions.LinkSessionContactTx(ctx, tx, organizationID, params.SessionID, contact.ID); err != nil {
		return Result{}, err
	}

	job, err := s.jobs.InsertTx(ctx, tx, organizationID, jobrepo.InsertParams{
		ContactID:   contact.ID,
		ServiceType: strings.TrimSpace(params.ServiceType),
		Priority:    params.Priority,
		Notes:       fragment.Notes,
	})
	if err != nil {
		return Result{}, err
	}

	if key != "" {
		if err := s.claims.CompleteTx(ctx, tx, organizationID, key, contact.ID, job.ID); err != nil {
			return Result{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("commit conversion transaction: %w", err)
	}

	s.bus.Publish(ctx, events.ConversationConverted{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  organizationID,
		SessionID: params.SessionID,
		ContactID: contact.ID,
		JobID:     job.ID,
	})
	s.log.ConversionCompleted(organizationID.String(), params.SessionID, contact.ID.String(), job.ID.String())

	return Result{ContactID: contact.ID, ContactCreated: created, JobID: job.ID}, nil
}

// validate normalizes the operator input and rejects incomplete fragments
// before any database work.
func validate(params ConvertParams) (contactsvc.Fragment, error) {
	fragment := contactsvc.NormalizeFragment(contactsvc.Fragment{
		Name:  params.Name,
		Phone: params.Phone,
		Email: params.Email,
		Notes: params.Notes,
	})

	if fragment.Name == "" {
		return contactsvc.Fragment{}, apperr.Validation("name is required")
	}
	if strings.TrimSpace(params.Phone) == "" || fragment.Phone == "" {
		return contactsvc.Fragment{}, apperr.Validation("a valid phone number is required")
	}
	if strings.TrimSpace(params.SessionID) == "" {
		return contactsvc.Fragment{}, apperr.Validation("session ID is required")
	}

	switch params.Priority {
	case "", jobrepo.PriorityNormal, jobrepo.PriorityEmergency:
	default:
		return contactsvc.Fragment{}, apperr.Validation(fmt.Sprintf("unknown priority %q", params.Priority))
	}

	return fragment, nil
}
