// Package service implements the identity resolver: given an incoming
// identity fragment for a tenant, it produces exactly one contact id,
// creating or merging as needed.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hvac_crm_backend/internal/contacts/repository"
	"hvac_crm_backend/internal/contacts/transport"
	"hvac_crm_backend/internal/events"
	"hvac_crm_backend/platform/apperr"
	"hvac_crm_backend/platform/logger"
	"hvac_crm_backend/platform/phone"
	"hvac_crm_backend/platform/validator"
)

// MessageLinker retroactively links a session's unresolved messages to a
// contact once identity becomes known. Implemented by the conversations
// repository; injected to avoid a module dependency cycle.
type MessageLinker interface {
	LinkSessionContact(ctx context.Context, organizationID uuid.UUID, sessionID string, contactID uuid.UUID) (int64, error)
}

// Fragment is an incoming identity fragment. Empty fields mean absent;
// Phone and Email are normalized before lookup.
type Fragment struct {
	Name      string
	Phone     string
	Email     string
	Notes     string
	SessionID string
}

// Service provides identity resolution and contact reads.
type Service struct {
	repo   repository.Repository
	linker MessageLinker
	bus    events.Bus
	val    *validator.Validator
	log    *logger.Logger
}

// New creates a new contacts service.
func New(repo repository.Repository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, val: val, log: log}
}

// SetMessageLinker injects the session back-fill dependency (wired in main).
func (s *Service) SetMessageLinker(linker MessageLinker) {
	s.linker = linker
}

// ResolveIdentity resolves an identity fragment to exactly one contact id.
//
// Lookup policy (explicit, see DESIGN.md): a fragment with a phone is keyed
// on (tenant, phone) via an atomic storage-level upsert; an email-only
// fragment may match an existing contact by (tenant, email). A fragment
// carrying both never re-keys an existing phone match by its email.
//
// A fragment with neither phone nor email resolves to nil with no error:
// anonymous traffic is the expected default, not a failure.
//
// The resolver does not deduplicate identical note fragments; callers must
// invoke it once per distinct fragment.
func (s *Service) ResolveIdentity(ctx context.Context, organizationID uuid.UUID, fragment Fragment) (*uuid.UUID, error) {
	normalized := NormalizeFragment(fragment)

	// Widget visitors type junk into the email field; a malformed address
	// must not become an identity key.
	if normalized.Email != "" && s.val.Var(normalized.Email, "email") != nil {
		s.log.Debug("discarding malformed email fragment", "session_id", normalized.SessionID)
		normalized.Email = ""
	}

	if normalized.Phone == "" && normalized.Email == "" {
		return nil, nil
	}

	params := repository.MergeParams{
		OrganizationID: organizationID,
		Name:           normalized.Name,
		Notes:          normalized.Notes,
	}
	if normalized.Phone != "" {
		phoneValue := normalized.Phone
		params.Phone = &phoneValue
	}
	if normalized.Email != "" {
		emailValue := normalized.Email
		params.Email = &emailValue
	}

	contact, created, err := s.resolve(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}

	if normalized.SessionID != "" && s.linker != nil {
		linked, err := s.linker.LinkSessionContact(ctx, organizationID, normalized.SessionID, contact.ID)
		if err != nil {
			return nil, err
		}
		if linked > 0 {
			s.log.Debug("session messages back-filled", "session_id", normalized.SessionID, "count", linked)
		}
	}

	s.bus.Publish(ctx, events.ContactResolved{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  organizationID,
		ContactID: contact.ID,
		SessionID: normalized.SessionID,
		Created:   created,
	})

	return &contact.ID, nil
}

func (s *Service) resolve(ctx context.Context, organizationID uuid.UUID, params repository.MergeParams) (repository.Contact, bool, error) {
	if params.Phone != nil {
		// The unique index on (organization_id, phone) makes the upsert the
		// synchronization point for concurrent first-contact messages.
		return s.repo.UpsertMergeByPhone(ctx, params)
	}

	existing, err := s.repo.GetByEmail(ctx, organizationID, *params.Email)
	if err == nil {
		merged, err := s.repo.MergeInto(ctx, organizationID, existing.ID, params)
		if err != nil {
			return repository.Contact{}, false, err
		}
		return merged, false, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return repository.Contact{}, false, err
	}

	contact, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Contact{}, false, err
	}
	return contact, true, nil
}

// GetByID retrieves a contact.
func (s *Service) GetByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (transport.ContactResponse, error) {
	contact, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return transport.ContactResponse{}, err
	}
	return toResponse(contact), nil
}

// List retrieves contacts with search and pagination.
func (s *Service) List(ctx context.Context, organizationID uuid.UUID, req transport.ListContactsRequest) (transport.ContactListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		OrganizationID: organizationID,
		Search:         strings.TrimSpace(req.Search),
		Limit:          pageSize,
		Offset:         (page - 1) * pageSize,
	})
	if err != nil {
		return transport.ContactListResponse{}, err
	}

	responses := make([]transport.ContactResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}

	return transport.ContactListResponse{
		Items:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// NormalizeFragment trims all fields and canonicalizes the phone number.
// Malformed or empty phone/email values normalize to absent.
func NormalizeFragment(fragment Fragment) Fragment {
	return Fragment{
		Name:      strings.TrimSpace(fragment.Name),
		Phone:     phone.Key(fragment.Phone),
		Email:     strings.ToLower(strings.TrimSpace(fragment.Email)),
		Notes:     strings.TrimSpace(fragment.Notes),
		SessionID: strings.TrimSpace(fragment.SessionID),
	}
}

// MergeNotes implements the append-only note merge: both non-empty
// concatenates with a blank line, otherwise the non-empty side wins.
// No note text is ever discarded.
func MergeNotes(stored, incoming string) string {
	switch {
	case stored == "":
		return incoming
	case incoming == "":
		return stored
	default:
		return stored + "\n\n" + incoming
	}
}

func toResponse(contact repository.Contact) transport.ContactResponse {
	return transport.ContactResponse{
		ID:         contact.ID,
		Name:       contact.Name,
		Phone:      contact.Phone,
		Email:      contact.Email,
		Notes:      contact.Notes,
		Street:     contact.Street,
		City:       contact.City,
		State:      contact.State,
		PostalCode: contact.PostalCode,
		CreatedAt:  contact.CreatedAt,
		UpdatedAt:  contact.UpdatedAt,
	}
}
