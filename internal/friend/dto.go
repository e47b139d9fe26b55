package friend

// CreateFriendRequest represents the request to register a friend
type CreateFriendRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=100"`
}

// UpdateFriendRequest represents the request to update a friend
type UpdateFriendRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Nickname *string `json:"nickname,omitempty"`
}

// FriendResponse represents the response for a friend
type FriendResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Nickname  *string `json:"nickname,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Friend model to a FriendResponse DTO
func (f *Friend) ToResponse() *FriendResponse {
	return &FriendResponse{
		ID:        f.ID.String(),
		Name:      f.Name,
		Nickname:  f.Nickname,
		CreatedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
