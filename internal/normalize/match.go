package normalize

import (
	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

// Match keeps scores only for completed matches. With no usable status the
// presence of score fields decides between Completed and Upcoming.
func Match(entry map[string]any) match.Match {
	scheduled := ParseDate(loosemap.String(entry, "match_date", "date", "scheduled_at"))
	out := match.Match{
		UID:           uid(entry),
		Number:        loosemap.IntOr(entry, 0, "match_number", "number"),
		TeamA:         teamRef(entry, "team_a"),
		TeamB:         teamRef(entry, "team_b"),
		ScheduledAt:   scheduled,
		DateDisplay:   DisplayDate(scheduled),
		TeamAScore:    score(entry, "team_a"),
		TeamBScore:    score(entry, "team_b"),
		Result:        loosemap.String(entry, "result"),
		ManOfTheMatch: loosemap.String(entry, "man_of_the_match", "player_of_the_match"),
	}
	if ref := loosemap.Map(entry, "venue"); ref != nil {
		out.Venue = Venue(ref)
	} else {
		out.Venue.Name = loosemap.String(entry, "venue")
	}

	status, ok := match.ParseStatus(loosemap.String(entry, "status", "match_status"))
	if !ok {
		status = match.StatusUpcoming
		if out.HasScores() {
			status = match.StatusCompleted
		}
	}
	out.Status = status
	if status != match.StatusCompleted {
		out.TeamAScore = nil
		out.TeamBScore = nil
	}
	return out
}

// score reads <side>_runs/_wickets/_overs, or a <side>_score group with
// runs/wickets/overs. Absent runs means no score, never 0/0.
func score(entry map[string]any, side string) *match.Score {
	src, prefix := entry, side+"_"
	if group := loosemap.Map(entry, side+"_score"); group != nil {
		src, prefix = group, ""
	}

	runs, ok := loosemap.Int(src, prefix+"runs")
	if !ok {
		return nil
	}
	overs, _ := loosemap.Raw(src, prefix+"overs")
	return &match.Score{
		Runs:    runs,
		Wickets: loosemap.IntOr(src, 0, prefix+"wickets"),
		Overs:   Overs(overs),
	}
}
