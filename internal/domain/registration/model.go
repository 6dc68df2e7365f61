package registration

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusWaitlisted Status = "waitlisted"
)

// ContentType is the CMS schema registrations are stored under.
const ContentType = "player_registration"

// Submission is a public registration form entry. Only administrators change
// Status after creation, and only through the CMS.
type Submission struct {
	FullName      string
	Email         string
	Phone         string
	DateOfBirth   string
	PreferredRole string
	BattingStyle  string
	BowlingStyle  string
	Experience    string
	// PreferredTeam is the visitor's free text; PreferredTeamCode is set when it
	// names a known franchise.
	PreferredTeam     string
	PreferredTeamCode string
	Status            Status
	SubmittedAt       time.Time
}

// Repository persists submissions. Create returns the stored entry UID.
type Repository interface {
	Create(ctx context.Context, s Submission) (string, error)
}
