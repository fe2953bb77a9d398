package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"hvac_crm_backend/internal/conversations/repository"
)

// AnonymousName is the snapshot name shown for sessions that have not
// revealed any identity yet.
const AnonymousName = "Website Visitor"

// ContactSnapshot is the best-known identity for a conversation, assembled
// progressively from contact links and inline sender fields.
type ContactSnapshot struct {
	ContactID  *uuid.UUID `json:"contactId,omitempty"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	HasDetails bool       `json:"hasDetails"`
}

// Conversation is the derived grouping of one session's messages. It is
// recomputed on every read and never persisted.
type Conversation struct {
	SessionID       string
	Messages        []repository.Message
	Contact         ContactSnapshot
	LastMessageAt   time.Time
	LastMessageBody string
}

// BuildThreads groups a tenant's flat message history (ascending by session
// id, then timestamp) into conversations sorted most-recent-first.
//
// Single pass, O(n) in message count, deterministic for a given input order;
// the input slice is never mutated. Snapshot fields follow later-non-empty-
// wins semantics: a later message's non-empty name/email/phone overwrites
// the field, empty values never erase one.
func BuildThreads(messages []repository.Message) []Conversation {
	index := make(map[string]int)
	threads := make([]Conversation, 0)

	for _, msg := range messages {
		pos, seen := index[msg.SessionID]
		if !seen {
			pos = len(threads)
			index[msg.SessionID] = pos
			threads = append(threads, Conversation{
				SessionID: msg.SessionID,
				Contact:   ContactSnapshot{Name: AnonymousName},
			})
		}

		thread := &threads[pos]
		thread.Messages = append(thread.Messages, msg)

		refreshSnapshot(&thread.Contact, msg)

		if thread.LastMessageAt.IsZero() || !msg.CreatedAt.Before(thread.LastMessageAt) {
			thread.LastMessageAt = msg.CreatedAt
			thread.LastMessageBody = msg.Body
		}
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastMessageAt.After(threads[j].LastMessageAt)
	})

	return threads
}

func refreshSnapshot(snapshot *ContactSnapshot, msg repository.Message) {
	if msg.ContactID != nil {
		snapshot.ContactID = msg.ContactID
	}

	applyField(&snapshot.Name, joined(msg.ContactName), snapshot)
	applyField(&snapshot.Phone, joined(msg.ContactPhone), snapshot)
	applyField(&snapshot.Email, joined(msg.ContactEmail), snapshot)

	applyField(&snapshot.Name, msg.SenderName, snapshot)
	applyField(&snapshot.Phone, msg.SenderPhone, snapshot)
	applyField(&snapshot.Email, msg.SenderEmail, snapshot)
}

// applyField overwrites the target with a non-empty incoming value and marks
// the snapshot as detailed. Empty values never erase a filled field.
func applyField(target *string, incoming string, snapshot *ContactSnapshot) {
	if incoming == "" {
		return
	}
	*target = incoming
	snapshot.HasDetails = true
}

func joined(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
