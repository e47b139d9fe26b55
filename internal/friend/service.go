package friend

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrFriendNotFound   = errors.New("friend not found")
	ErrFriendReferenced = errors.New("friend is a participant in one or more meetings")
)

// Service handles friend business logic
type Service struct {
	repo *Repository
}

// NewService creates a new friend service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new friend
func (s *Service) Create(ctx context.Context, req *CreateFriendRequest) (*Friend, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a friend by their ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Friend, error) {
	friend, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, ErrFriendNotFound
	}
	return friend, nil
}

// LookupName returns the display name for a friend ID
func (s *Service) LookupName(ctx context.Context, id uuid.UUID) (string, error) {
	friend, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return friend.Name, nil
}

// List retrieves all friends with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Friend, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing friend
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateFriendRequest) (*Friend, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrFriendNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a friend. Deletion is blocked while any meeting still
// references the friend, so expenses never point at a missing identity.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	references, err := s.repo.CountMeetingReferences(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrFriendReferenced
	}

	return s.repo.Delete(ctx, id)
}
