package match

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/domain/venue"
)

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusLive      Status = "Live"
	StatusCompleted Status = "Completed"
	StatusAbandoned Status = "Abandoned"
)

// ParseStatus accepts any casing and surrounding space.
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "upcoming", "scheduled":
		return StatusUpcoming, true
	case "live", "in progress":
		return StatusLive, true
	case "completed", "complete", "finished":
		return StatusCompleted, true
	case "abandoned", "no result":
		return StatusAbandoned, true
	default:
		return "", false
	}
}

// Score is one innings total. Overs keeps the stored form, where the digit
// after the point counts balls, not tenths.
type Score struct {
	Runs    int
	Wickets int
	Overs   string
}

func (s Score) Display() string {
	return strconv.Itoa(s.Runs) + "/" + strconv.Itoa(s.Wickets)
}

// Match carries scores only when Status is Completed.
type Match struct {
	UID           string
	Number        int
	TeamA         team.Team
	TeamB         team.Team
	Venue         venue.Venue
	ScheduledAt   *time.Time
	DateDisplay   string
	Status        Status
	TeamAScore    *Score
	TeamBScore    *Score
	Result        string
	ManOfTheMatch string
}

func (m Match) HasScores() bool {
	return m.TeamAScore != nil || m.TeamBScore != nil
}
