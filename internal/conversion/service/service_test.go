package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	contactrepo "hvac_crm_backend/internal/contacts/repository"
	"hvac_crm_backend/internal/events"
	jobrepo "hvac_crm_backend/internal/jobs/repository"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
)

func TestValidateRejectsMissingNameBeforeAnyDatabaseWork(t *testing.T) {
	_, err := validate(ConvertParams{
		SessionID: "session-1",
		Phone:     "555-123-4567",
	})

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateRejectsMissingPhone(t *testing.T) {
	_, err := validate(ConvertParams{
		SessionID: "session-1",
		Name:      "Jordan Fields",
		Phone:     "   ",
	})

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateRejectsMissingSessionID(t *testing.T) {
	_, err := validate(ConvertParams{
		Name:  "Jordan Fields",
		Phone: "555-123-4567",
	})

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateRejectsUnknownPriority(t *testing.T) {
	_, err := validate(ConvertParams{
		SessionID: "session-1",
		Name:      "Jordan Fields",
		Phone:     "555-123-4567",
		Priority:  "urgent",
	})

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateNormalizesTheFragment(t *testing.T) {
	fragment, err := validate(ConvertParams{
		SessionID: "session-1",
		Name:      "  Jordan Fields ",
		Phone:     "(555) 123-4567",
		Email:     "Jordan@Example.com",
		Notes:     " wants a quote for a heat pump ",
	})
	if err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}

	if fragment.Name != "Jordan Fields" {
		t.Fatalf("expected trimmed name, got %q", fragment.Name)
	}
	if fragment.Phone != "+15551234567" {
		t.Fatalf("expected E.164 phone, got %q", fragment.Phone)
	}
	if fragment.Email != "jordan@example.com" {
		t.Fatalf("expected lowercase email, got %q", fragment.Email)
	}
	if fragment.Notes != "wants a quote for a heat pump" {
		t.Fatalf("expected trimmed notes, got %q", fragment.Notes)
	}
}

// fakeTx records the transaction outcome. Only Commit and Rollback are
// reachable from Convert; the embedded interface covers the rest.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx     *fakeTx
	begins int
}

func (d *fakeDB) Begin(_ context.Context) (pgx.Tx, error) {
	d.begins++
	return d.tx, nil
}

type fakeClaims struct {
	claimResult bool
	claimed     int
	completed   bool
}

func (c *fakeClaims) ClaimTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, _, _ string) (bool, error) {
	c.claimed++
	return c.claimResult, nil
}

func (c *fakeClaims) CompleteTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, _ string, _, _ uuid.UUID) error {
	c.completed = true
	return nil
}

type fakeSessions struct {
	exists          bool
	linkedContactID uuid.UUID
}

func (s *fakeSessions) SessionExists(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return s.exists, nil
}

func (s *fakeSessions) LinkSessionContactTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, _ string, contactID uuid.UUID) (int64, error) {
	s.linkedContactID = contactID
	return 1, nil
}

type fakeContacts struct {
	contact contactrepo.Contact
	merged  contactrepo.MergeParams
}

func (c *fakeContacts) UpsertMergeByPhoneTx(_ context.Context, _ pgx.Tx, params contactrepo.MergeParams) (contactrepo.Contact, bool, error) {
	c.merged = params
	return c.contact, true, nil
}

type fakeJobs struct {
	job      jobrepo.Job
	inserted jobrepo.InsertParams
	err      error
}

func (j *fakeJobs) InsertTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, params jobrepo.InsertParams) (jobrepo.Job, error) {
	if j.err != nil {
		return jobrepo.Job{}, j.err
	}
	j.inserted = params
	job := j.job
	job.ContactID = params.ContactID
	return job, nil
}

type convertFixture struct {
	svc      *Service
	db       *fakeDB
	tx       *fakeTx
	claims   *fakeClaims
	sessions *fakeSessions
	contacts *fakeContacts
	jobs     *fakeJobs
}

func newConvertFixture() *convertFixture {
	log := logger.New("test")
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}
	claims := &fakeClaims{claimResult: true}
	sessions := &fakeSessions{exists: true}
	contacts := &fakeContacts{contact: contactrepo.Contact{ID: uuid.New(), Name: "Jordan Fields"}}
	jobs := &fakeJobs{job: jobrepo.Job{ID: uuid.New()}}

	return &convertFixture{
		svc:      New(db, claims, sessions, contacts, jobs, events.NewInMemoryBus(log), log),
		db:       db,
		tx:       tx,
		claims:   claims,
		sessions: sessions,
		contacts: contacts,
		jobs:     jobs,
	}
}

func convertInput() ConvertParams {
	return ConvertParams{
		SessionID: "session-1",
		Name:      "Jordan Fields",
		Phone:     "(555) 123-4567",
		Email:     "jordan@example.com",
		Notes:     "furnace is making a grinding noise",
		Priority:  jobrepo.PriorityEmergency,
	}
}

func TestConvertCommitsAndCarriesNotesOntoTheJob(t *testing.T) {
	fx := newConvertFixture()

	result, err := fx.svc.Convert(context.Background(), uuid.New(), convertInput())
	if err != nil {
		t.Fatalf("expected conversion to succeed, got %v", err)
	}

	if !fx.tx.committed {
		t.Fatal("expected the transaction to commit")
	}
	if fx.jobs.inserted.Notes != "furnace is making a grinding noise" {
		t.Fatalf("expected the operator notes on the job, got %q", fx.jobs.inserted.Notes)
	}
	if fx.jobs.inserted.Priority != jobrepo.PriorityEmergency {
		t.Fatalf("expected emergency priority on the job, got %q", fx.jobs.inserted.Priority)
	}
	if fx.sessions.linkedContactID != fx.contacts.contact.ID {
		t.Fatalf("expected the session linked to contact %s, got %s", fx.contacts.contact.ID, fx.sessions.linkedContactID)
	}
	if result.ContactID != fx.contacts.contact.ID {
		t.Fatalf("expected contact ID %s, got %s", fx.contacts.contact.ID, result.ContactID)
	}
	if result.JobID != fx.jobs.job.ID {
		t.Fatalf("expected job ID %s, got %s", fx.jobs.job.ID, result.JobID)
	}
}

func TestConvertRollsBackWhenJobInsertFails(t *testing.T) {
	fx := newConvertFixture()
	fx.jobs.err = errors.New("insert job: connection reset")

	params := convertInput()
	params.IdempotencyKey = "retry-safe-1"

	if _, err := fx.svc.Convert(context.Background(), uuid.New(), params); err == nil {
		t.Fatal("expected conversion to fail")
	}

	if fx.tx.committed {
		t.Fatal("expected no commit after a failed job insert")
	}
	if !fx.tx.rolledBack {
		t.Fatal("expected the transaction to roll back")
	}
	if fx.claims.claimed != 1 {
		t.Fatalf("expected exactly one claim attempt, got %d", fx.claims.claimed)
	}
	if fx.claims.completed {
		t.Fatal("expected the claim row to never complete; it rolls back with the transaction")
	}
}

func TestConvertRejectsReplayedIdempotencyKey(t *testing.T) {
	fx := newConvertFixture()
	fx.claims.claimResult = false

	params := convertInput()
	params.IdempotencyKey = "retry-safe-1"

	_, err := fx.svc.Convert(context.Background(), uuid.New(), params)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on replayed key, got %v", err)
	}

	if fx.tx.committed {
		t.Fatal("expected no commit on a replayed key")
	}
	if !fx.tx.rolledBack {
		t.Fatal("expected the transaction to roll back")
	}
}

func TestConvertReturnsNotFoundForUnknownSession(t *testing.T) {
	fx := newConvertFixture()
	fx.sessions.exists = false

	_, err := fx.svc.Convert(context.Background(), uuid.New(), convertInput())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if fx.db.begins != 0 {
		t.Fatalf("expected no transaction for an unknown session, got %d begins", fx.db.begins)
	}
}
