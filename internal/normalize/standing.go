package normalize

import (
	"strings"

	"github.com/riskibarqy/cricket-league/internal/domain/standing"
	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

func Standing(entry map[string]any) standing.Entry {
	position := loosemap.IntOr(entry, 0, "position", "rank")
	nrr, _ := loosemap.Float(entry, "net_run_rate", "nrr")
	return standing.Entry{
		Team:       teamRef(entry, "team"),
		Position:   position,
		Played:     loosemap.IntOr(entry, 0, "played", "matches_played"),
		Won:        loosemap.IntOr(entry, 0, "won", "wins"),
		Lost:       loosemap.IntOr(entry, 0, "lost", "losses"),
		Tied:       loosemap.IntOr(entry, 0, "tied", "ties"),
		NoResult:   loosemap.IntOr(entry, 0, "no_result", "nr"),
		Points:     loosemap.IntOr(entry, 0, "points", "pts"),
		NetRunRate: nrr,
		Form:       form(entry),
		Qualified:  standing.IsQualified(position),
	}
}

// form keeps W and L tokens only.
func form(entry map[string]any) []string {
	tokens := loosemap.Strings(entry, "recent_form")
	if len(tokens) == 0 {
		tokens = loosemap.Strings(entry, "form")
	}
	if len(tokens) == 1 && len(tokens[0]) > 1 {
		tokens = strings.Split(tokens[0], "")
	}

	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch t := strings.ToUpper(strings.TrimSpace(token)); t {
		case "W", "L":
			out = append(out, t)
		}
	}
	return out
}
