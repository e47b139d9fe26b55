package friend

import (
	"time"

	"github.com/google/uuid"
)

// Friend represents a registered person in the system
type Friend struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Nickname  *string   `json:"nickname,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
