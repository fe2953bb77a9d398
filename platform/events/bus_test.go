package events

import (
	"context"
	"errors"
	"testing"

	"hvac_crm_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishSync_RunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
			order = append(order, n)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected handlers in order, got %v", order)
	}
}

func TestPublishSync_ReturnsFirstErrorAfterAllHandlersRun(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	firstErr := errors.New("first failure")
	ran := 0
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		ran++
		return firstErr
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		ran++
		return errors.New("second failure")
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, firstErr) {
		t.Fatalf("expected first error, got %v", err)
	}
	if ran != 2 {
		t.Fatalf("expected both handlers to run, got %d", ran)
	}
}

func TestPublishSync_NoSubscribersIsANoOp(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
