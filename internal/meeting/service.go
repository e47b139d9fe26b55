package meeting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/event"
)

// Common errors
var (
	ErrMeetingNotFound       = errors.New("meeting not found")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrParticipantReferenced = errors.New("participant is referenced by one or more expenses")
	ErrInvalidParticipant    = errors.New("either friend_id or display_name is required")
	ErrInvalidMeetingDate    = errors.New("invalid meeting date")
	ErrNegativeFundCap       = errors.New("fund cap cannot be negative")
)

// friendLookup is the slice of the friend feature this service needs:
// resolving a friend id to their display name when building the roster.
type friendLookup interface {
	LookupName(ctx context.Context, id uuid.UUID) (string, error)
}

// store is the persistence surface the service drives. *Repository
// implements it.
type store interface {
	Create(ctx context.Context, req *CreateMeetingRequest, meetingDate time.Time) (*Meeting, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Meeting, error)
	List(ctx context.Context, limit, offset int) ([]*Meeting, int, error)
	Update(ctx context.Context, id uuid.UUID, name, description *string, meetingDate *time.Time) (*Meeting, error)
	UpdateFundConfig(ctx context.Context, id uuid.UUID, useFund bool, fundCap float64) (*Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddParticipant(ctx context.Context, meetingID uuid.UUID, friendID *uuid.UUID, displayName string, fundExcluded bool) (*Participant, error)
	GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]*Participant, error)
	GetParticipant(ctx context.Context, meetingID, participantID uuid.UUID) (*Participant, error)
	CountParticipantExpenseReferences(ctx context.Context, participantID uuid.UUID) (int, error)
	RemoveParticipant(ctx context.Context, meetingID, participantID uuid.UUID) error
}

// Service handles meeting business logic
type Service struct {
	repo    store
	friends friendLookup
	events  *event.Worker
}

// NewService creates a new meeting service
func NewService(repo store, friends friendLookup, events *event.Worker) *Service {
	return &Service{repo: repo, friends: friends, events: events}
}

// Create creates a new meeting
func (s *Service) Create(ctx context.Context, req *CreateMeetingRequest) (*Meeting, error) {
	meetingDate, err := time.Parse("2006-01-02", req.MeetingDate)
	if err != nil {
		return nil, ErrInvalidMeetingDate
	}
	if req.FundCap < 0 {
		return nil, ErrNegativeFundCap
	}

	meeting, err := s.repo.Create(ctx, req, meetingDate)
	if err != nil {
		return nil, err
	}

	s.events.Log(event.New(event.TypeMeetingCreated, meeting.ID.String(), map[string]any{
		"name":     meeting.Name,
		"use_fund": meeting.UseFund,
	}))

	return meeting, nil
}

// GetByID retrieves a meeting by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	return meeting, nil
}

// GetByIDWithParticipants retrieves a meeting together with its roster
func (s *Service) GetByIDWithParticipants(ctx context.Context, id uuid.UUID) (*Meeting, []*Participant, error) {
	meeting, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return meeting, participants, nil
}

// List retrieves all meetings with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Meeting, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing meeting
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateMeetingRequest) (*Meeting, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrMeetingNotFound
	}

	var meetingDate *time.Time
	if req.MeetingDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.MeetingDate)
		if err != nil {
			return nil, ErrInvalidMeetingDate
		}
		meetingDate = &parsed
	}

	return s.repo.Update(ctx, id, req.Name, req.Description, meetingDate)
}

// UpdateFundConfig changes whether and how much a meeting draws from the
// shared reserve
func (s *Service) UpdateFundConfig(ctx context.Context, id uuid.UUID, req *UpdateFundConfigRequest) (*Meeting, error) {
	if req.FundCap < 0 {
		return nil, ErrNegativeFundCap
	}

	meeting, err := s.repo.UpdateFundConfig(ctx, id, req.UseFund, req.FundCap)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	return meeting, nil
}

// Delete removes a meeting
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AddParticipant adds a registered friend or an ephemeral attendee to the
// roster. Ephemeral attendees get their own UUID identity rather than
// reusing the display name, so two attendees may share a name.
func (s *Service) AddParticipant(ctx context.Context, meetingID uuid.UUID, req *AddParticipantRequest) (*Participant, error) {
	meeting, err := s.repo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}

	switch {
	case req.FriendID != nil:
		friendID, err := uuid.Parse(*req.FriendID)
		if err != nil {
			return nil, ErrInvalidParticipant
		}
		name, err := s.friends.LookupName(ctx, friendID)
		if err != nil {
			return nil, err
		}
		return s.repo.AddParticipant(ctx, meetingID, &friendID, name, req.FundExcluded)
	case req.DisplayName != nil && *req.DisplayName != "":
		return s.repo.AddParticipant(ctx, meetingID, nil, *req.DisplayName, req.FundExcluded)
	default:
		return nil, ErrInvalidParticipant
	}
}

// RemoveParticipant removes a roster entry. Removal is blocked while any
// expense still references the participant; the dangling reference must be
// resolved at the source, never papered over at settlement time.
func (s *Service) RemoveParticipant(ctx context.Context, meetingID, participantID uuid.UUID) error {
	participant, err := s.repo.GetParticipant(ctx, meetingID, participantID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrParticipantNotFound
	}

	references, err := s.repo.CountParticipantExpenseReferences(ctx, participantID)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrParticipantReferenced
	}

	return s.repo.RemoveParticipant(ctx, meetingID, participantID)
}
