package standing

import "github.com/riskibarqy/cricket-league/internal/domain/team"

// QualifyingPositions is the playoff cut, independent of table size.
const QualifyingPositions = 4

type Entry struct {
	Team       team.Team
	Position   int
	Played     int
	Won        int
	Lost       int
	Tied       int
	NoResult   int
	Points     int
	NetRunRate float64
	// Form is most recent last, each token "W" or "L".
	Form      []string
	Qualified bool
}

func IsQualified(position int) bool {
	return position >= 1 && position <= QualifyingPositions
}
