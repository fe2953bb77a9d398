package service

import (
	"testing"

	"hvac_crm_backend/internal/jobs/repository"
)

func TestCanTransition_LinearPathOnly(t *testing.T) {
	allowed := [][2]string{
		{repository.StatusNew, repository.StatusScheduled},
		{repository.StatusScheduled, repository.StatusProgress},
		{repository.StatusProgress, repository.StatusDone},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}
}

func TestCanTransition_RejectsSkipsAndBackwardMoves(t *testing.T) {
	forbidden := [][2]string{
		{repository.StatusNew, repository.StatusProgress},
		{repository.StatusNew, repository.StatusDone},
		{repository.StatusScheduled, repository.StatusNew},
		{repository.StatusProgress, repository.StatusScheduled},
		{repository.StatusDone, repository.StatusNew},
		{repository.StatusDone, repository.StatusDone},
	}
	for _, pair := range forbidden {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestCanTransition_UnknownStatusNeverTransitions(t *testing.T) {
	if CanTransition("cancelled", repository.StatusDone) {
		t.Fatal("expected unknown source status to be rejected")
	}
	if CanTransition(repository.StatusNew, "cancelled") {
		t.Fatal("expected unknown target status to be rejected")
	}
}
