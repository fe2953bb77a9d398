package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string                     { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool               { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string               { return "test" }
func (c testSchedulerConfig) GetFollowUpReminderDelay() time.Duration { return time.Hour }

func TestLeadFollowUpReminderPayloadRoundTrip(t *testing.T) {
	payload := LeadFollowUpReminderPayload{
		LeadID:         "0b8e9f1c-9a74-4c39-bd60-5f2f0a3f1d11",
		OrganizationID: "7c2a11de-30fb-4f9d-b6a1-e3c6db1e8a52",
		LeadName:       "Evergreen Heating",
	}

	task, err := NewLeadFollowUpReminderTask(payload)
	if err != nil {
		t.Fatalf("expected task, got error %v", err)
	}
	if task.Type() != TaskLeadFollowUpReminder {
		t.Fatalf("expected task type %q, got %q", TaskLeadFollowUpReminder, task.Type())
	}

	parsed, err := ParseLeadFollowUpReminderPayload(task)
	if err != nil {
		t.Fatalf("expected payload, got error %v", err)
	}
	if parsed != payload {
		t.Fatalf("expected %+v, got %+v", payload, parsed)
	}
}

func TestPingRedis_ReachableServer(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := testSchedulerConfig{redisURL: "redis://" + srv.Addr()}
	if err := PingRedis(context.Background(), cfg); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}
}

func TestPingRedis_MissingURLFails(t *testing.T) {
	if err := PingRedis(context.Background(), testSchedulerConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}
