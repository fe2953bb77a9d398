package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"hvac_crm_backend/internal/conversations/repository"
)

func msgAt(sessionID, body string, at time.Time) repository.Message {
	return repository.Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Direction: repository.DirectionInbound,
		Body:      body,
		CreatedAt: at,
	}
}

func TestBuildThreads_GroupsBySessionSortedMostRecentFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	messages := []repository.Message{
		msgAt("session-a", "first in a", base),
		msgAt("session-a", "second in a", base.Add(10*time.Minute)),
		msgAt("session-b", "only in b", base.Add(5*time.Minute)),
		msgAt("session-c", "latest overall", base.Add(1*time.Hour)),
	}

	threads := BuildThreads(messages)

	if len(threads) != 3 {
		t.Fatalf("expected 3 threads, got %d", len(threads))
	}
	if threads[0].SessionID != "session-c" {
		t.Fatalf("expected session-c first, got %s", threads[0].SessionID)
	}
	if threads[1].SessionID != "session-a" {
		t.Fatalf("expected session-a second, got %s", threads[1].SessionID)
	}
	if threads[2].SessionID != "session-b" {
		t.Fatalf("expected session-b last, got %s", threads[2].SessionID)
	}
	if len(threads[1].Messages) != 2 {
		t.Fatalf("expected 2 messages in session-a, got %d", len(threads[1].Messages))
	}
	if threads[1].LastMessageBody != "second in a" {
		t.Fatalf("expected last body %q, got %q", "second in a", threads[1].LastMessageBody)
	}
}

func TestBuildThreads_CompletenessEveryMessageAppearsExactlyOnce(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var messages []repository.Message
	sessions := []string{"s1", "s2", "s3"}
	for i := 0; i < 30; i++ {
		messages = append(messages, msgAt(sessions[i%3], "body", base.Add(time.Duration(i)*time.Minute)))
	}

	threads := BuildThreads(messages)

	seen := make(map[uuid.UUID]int)
	total := 0
	for _, thread := range threads {
		for _, msg := range thread.Messages {
			seen[msg.ID]++
			total++
		}
	}

	if total != len(messages) {
		t.Fatalf("expected %d messages across threads, got %d", len(messages), total)
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("message %s appeared %d times", id, count)
		}
	}
}

func TestBuildThreads_AnonymousSessionGetsDefaultSnapshot(t *testing.T) {
	messages := []repository.Message{
		msgAt("anon", "hi, my furnace is broken", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}

	threads := BuildThreads(messages)

	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	snapshot := threads[0].Contact
	if snapshot.Name != AnonymousName {
		t.Fatalf("expected anonymous name %q, got %q", AnonymousName, snapshot.Name)
	}
	if snapshot.HasDetails {
		t.Fatal("expected anonymous snapshot to have no details")
	}
	if snapshot.ContactID != nil {
		t.Fatalf("expected nil contact id, got %s", snapshot.ContactID)
	}
}

func TestBuildThreads_LaterNonEmptyFieldsWinEmptyNeverErases(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first := msgAt("s", "hello", base)
	first.SenderName = "Dana"
	first.SenderEmail = "dana@example.com"

	second := msgAt("s", "my AC died", base.Add(time.Minute))
	second.SenderPhone = "+15551234567"

	third := msgAt("s", "actually use my work email", base.Add(2*time.Minute))
	third.SenderEmail = "dana@work.example.com"

	threads := BuildThreads([]repository.Message{first, second, third})

	snapshot := threads[0].Contact
	if snapshot.Name != "Dana" {
		t.Fatalf("expected name Dana, got %q", snapshot.Name)
	}
	if snapshot.Phone != "+15551234567" {
		t.Fatalf("expected phone kept from second message, got %q", snapshot.Phone)
	}
	if snapshot.Email != "dana@work.example.com" {
		t.Fatalf("expected later email to win, got %q", snapshot.Email)
	}
	if !snapshot.HasDetails {
		t.Fatal("expected snapshot to be marked detailed")
	}
}

func TestBuildThreads_LinkedContactFieldsFeedSnapshot(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contactID := uuid.New()
	name := "Household of Reyes"
	phone := "+15557654321"

	linked := msgAt("s", "booked last winter", base)
	linked.ContactID = &contactID
	linked.ContactName = &name
	linked.ContactPhone = &phone

	threads := BuildThreads([]repository.Message{linked})

	snapshot := threads[0].Contact
	if snapshot.ContactID == nil || *snapshot.ContactID != contactID {
		t.Fatalf("expected contact id %s, got %v", contactID, snapshot.ContactID)
	}
	if snapshot.Name != name {
		t.Fatalf("expected joined contact name, got %q", snapshot.Name)
	}
	if snapshot.Phone != phone {
		t.Fatalf("expected joined contact phone, got %q", snapshot.Phone)
	}
}

func TestBuildThreads_InputNotMutated(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	messages := []repository.Message{
		msgAt("b", "later", base.Add(time.Hour)),
		msgAt("a", "earlier", base),
	}
	originalFirst := messages[0].SessionID
	originalSecond := messages[1].SessionID

	BuildThreads(messages)

	if messages[0].SessionID != originalFirst || messages[1].SessionID != originalSecond {
		t.Fatal("input slice order was mutated")
	}
}

func TestBuildThreads_EmptyInput(t *testing.T) {
	threads := BuildThreads(nil)
	if len(threads) != 0 {
		t.Fatalf("expected no threads, got %d", len(threads))
	}
}
