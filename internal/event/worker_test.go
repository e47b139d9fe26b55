package event

import (
	"context"
	"sync"
	"testing"
)

// memoryLogger collects saved events for assertions.
type memoryLogger struct {
	mu     sync.Mutex
	events []Event
}

func (l *memoryLogger) Save(_ context.Context, e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *memoryLogger) saved() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func TestWorkerDeliversEvents(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	worker := NewWorker(logger, 16)
	worker.Start()

	worker.Log(New(TypeMeetingCreated, "m1", nil))
	worker.Log(New(TypeExpenseCreated, "e1", map[string]any{"amount": 9000.0}))
	worker.Log(New(TypeSettlementComputed, "m1", nil))

	worker.Shutdown()

	saved := logger.saved()
	if len(saved) != 3 {
		t.Fatalf("expected 3 events saved, got %d", len(saved))
	}
	wantTypes := []Type{TypeMeetingCreated, TypeExpenseCreated, TypeSettlementComputed}
	for i, want := range wantTypes {
		if saved[i].Type != want {
			t.Errorf("event %d: expected %s, got %s", i, want, saved[i].Type)
		}
	}
	if saved[1].Detail["amount"] != 9000.0 {
		t.Errorf("expected detail to survive, got %+v", saved[1].Detail)
	}
}

func TestWorkerShutdownDrainsBuffer(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	worker := NewWorker(logger, 8)

	// Buffered before the consumer starts; shutdown must still flush.
	for i := 0; i < 5; i++ {
		worker.Log(New(TypeFundDeposit, "f1", nil))
	}
	worker.Start()
	worker.Shutdown()

	if got := len(logger.saved()); got != 5 {
		t.Fatalf("expected 5 events drained, got %d", got)
	}
}

func TestWorkerLogAfterShutdown(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	worker := NewWorker(logger, 4)
	worker.Start()

	worker.Log(New(TypeExpenseCreated, "e1", nil))
	worker.Shutdown()

	// A log racing the shutdown must not panic; the event is simply lost.
	worker.Log(New(TypeExpenseCreated, "e2", nil))

	saved := logger.saved()
	if len(saved) != 1 {
		t.Fatalf("expected 1 event saved, got %d", len(saved))
	}
	if saved[0].EntityID != "e1" {
		t.Errorf("expected pre-shutdown event, got %s", saved[0].EntityID)
	}
}

func TestWorkerDropsWhenBufferFull(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	worker := NewWorker(logger, 1)

	// Consumer not running: the second event cannot fit and is dropped
	// instead of blocking the caller.
	worker.Log(New(TypeExpenseCreated, "e1", nil))
	worker.Log(New(TypeExpenseCreated, "e2", nil))

	worker.Start()
	worker.Shutdown()

	saved := logger.saved()
	if len(saved) != 1 {
		t.Fatalf("expected 1 event saved, got %d", len(saved))
	}
	if saved[0].EntityID != "e1" {
		t.Errorf("expected first event kept, got %s", saved[0].EntityID)
	}
}
