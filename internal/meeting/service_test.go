package meeting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/event"
)

// memoryLogger collects saved events for assertions.
type memoryLogger struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *memoryLogger) Save(_ context.Context, e event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *memoryLogger) saved() []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]event.Event, len(l.events))
	copy(out, l.events)
	return out
}

// fakeStore records the meeting handed to Create; the other store methods
// are unused by the paths under test.
type fakeStore struct {
	created *Meeting
}

func (f *fakeStore) Create(_ context.Context, req *CreateMeetingRequest, meetingDate time.Time) (*Meeting, error) {
	m := &Meeting{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		MeetingDate: meetingDate,
		UseFund:     req.UseFund,
		FundCap:     req.FundCap,
		CreatedAt:   time.Now(),
	}
	f.created = m
	return m, nil
}

func (f *fakeStore) GetByID(context.Context, uuid.UUID) (*Meeting, error) { return nil, nil }
func (f *fakeStore) List(context.Context, int, int) ([]*Meeting, int, error) {
	return nil, 0, nil
}
func (f *fakeStore) Update(context.Context, uuid.UUID, *string, *string, *time.Time) (*Meeting, error) {
	return nil, nil
}
func (f *fakeStore) UpdateFundConfig(context.Context, uuid.UUID, bool, float64) (*Meeting, error) {
	return nil, nil
}
func (f *fakeStore) Delete(context.Context, uuid.UUID) error { return nil }
func (f *fakeStore) AddParticipant(context.Context, uuid.UUID, *uuid.UUID, string, bool) (*Participant, error) {
	return nil, nil
}
func (f *fakeStore) GetParticipants(context.Context, uuid.UUID) ([]*Participant, error) {
	return nil, nil
}
func (f *fakeStore) GetParticipant(context.Context, uuid.UUID, uuid.UUID) (*Participant, error) {
	return nil, nil
}
func (f *fakeStore) CountParticipantExpenseReferences(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}
func (f *fakeStore) RemoveParticipant(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func TestCreateEmitsMeetingCreatedEvent(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	worker := event.NewWorker(logger, 8)
	worker.Start()

	svc := NewService(&fakeStore{}, nil, worker)

	created, err := svc.Create(context.Background(), &CreateMeetingRequest{
		Name:        "spring trip",
		MeetingDate: "2026-08-30",
		UseFund:     true,
		FundCap:     5000,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	worker.Shutdown()

	saved := logger.saved()
	if len(saved) != 1 {
		t.Fatalf("expected 1 event saved, got %d", len(saved))
	}
	if saved[0].Type != event.TypeMeetingCreated {
		t.Errorf("expected %s, got %s", event.TypeMeetingCreated, saved[0].Type)
	}
	if saved[0].EntityID != created.ID.String() {
		t.Errorf("expected entity id %s, got %s", created.ID, saved[0].EntityID)
	}
	if saved[0].Detail["name"] != "spring trip" {
		t.Errorf("expected meeting name in detail, got %+v", saved[0].Detail)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	worker := event.NewWorker(logger, 8)
	worker.Start()

	svc := NewService(&fakeStore{}, nil, worker)

	tests := []struct {
		name    string
		req     *CreateMeetingRequest
		wantErr error
	}{
		{
			name:    "malformed date",
			req:     &CreateMeetingRequest{Name: "trip", MeetingDate: "30-08-2026"},
			wantErr: ErrInvalidMeetingDate,
		},
		{
			name:    "negative fund cap",
			req:     &CreateMeetingRequest{Name: "trip", MeetingDate: "2026-08-30", FundCap: -1},
			wantErr: ErrNegativeFundCap,
		},
	}

	for _, tt := range tests {
		if _, err := svc.Create(context.Background(), tt.req); err != tt.wantErr {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}

	worker.Shutdown()
	if got := len(logger.saved()); got != 0 {
		t.Errorf("rejected creations must not emit events, got %d", got)
	}
}
