package meeting

import (
	"time"

	"github.com/google/uuid"
)

// Meeting represents one gathering whose shared expenses get settled
type Meeting struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	MeetingDate time.Time `json:"meeting_date"`
	UseFund     bool      `json:"use_fund"`
	FundCap     float64   `json:"fund_cap"`
	CreatedAt   time.Time `json:"created_at"`
}

// Participant represents one person on a meeting's roster. FriendID is set
// for registered friends and nil for ephemeral one-off attendees; either
// way the participant's own UUID is the identity expenses reference, so a
// friend rename never rewrites settlement history.
type Participant struct {
	ID           uuid.UUID  `json:"id"`
	MeetingID    uuid.UUID  `json:"meeting_id"`
	FriendID     *uuid.UUID `json:"friend_id,omitempty"`
	DisplayName  string     `json:"display_name"`
	FundExcluded bool       `json:"fund_excluded"`
	CreatedAt    time.Time  `json:"created_at"`
}
