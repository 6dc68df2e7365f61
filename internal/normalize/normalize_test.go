package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	out, err := loosemap.Decode([]byte(raw))
	require.NoError(t, err)
	return out
}

func TestMatch_CompletedScores(t *testing.T) {
	m := Match(decode(t, `{
		"uid": "m1",
		"match_number": 7,
		"team_a": [{"uid": "t1", "short_name": "FC", "team_name": "Flame Chargers"}],
		"team_b": {"uid": "t2", "short_name": "SS"},
		"venue": [{"uid": "v1", "title": "Riverside Ground", "city": "Pune"}],
		"match_date": "2026-04-12T14:00:00Z",
		"team_a_runs": 185, "team_a_wickets": 6, "team_a_overs": 20,
		"team_b_runs": 170, "team_b_wickets": 9, "team_b_overs": 18.4,
		"result": "Flame Chargers won by 15 runs"
	}`))

	assert.Equal(t, match.StatusCompleted, m.Status)
	require.NotNil(t, m.TeamAScore)
	require.NotNil(t, m.TeamBScore)
	assert.Equal(t, "185/6", m.TeamAScore.Display())
	assert.Equal(t, "20", m.TeamAScore.Overs)
	assert.Equal(t, "18.4", m.TeamBScore.Overs)
	assert.Equal(t, 7, m.Number)
	assert.Equal(t, "FC", m.TeamA.ShortName)
	assert.Equal(t, "Storm Sentinels", m.TeamB.Name)
	assert.Equal(t, "Riverside Ground", m.Venue.Name)
	assert.Equal(t, "Apr 12, 2026", m.DateDisplay)
}

func TestMatch_AbsentScoresStayNil(t *testing.T) {
	m := Match(decode(t, `{"uid": "m2", "match_number": 9, "team_a": {"short_name": "TT"}, "team_b": {"short_name": "RR"}}`))

	assert.Equal(t, match.StatusUpcoming, m.Status)
	assert.Nil(t, m.TeamAScore)
	assert.Nil(t, m.TeamBScore)
	assert.Equal(t, DateTBD, m.DateDisplay)
}

func TestMatch_ZeroRunsIsAScore(t *testing.T) {
	m := Match(decode(t, `{"status": "completed", "team_a_runs": 0, "team_a_wickets": 10, "team_a_overs": "8.3"}`))

	require.NotNil(t, m.TeamAScore)
	assert.Equal(t, "0/10", m.TeamAScore.Display())
	assert.Equal(t, "8.3", m.TeamAScore.Overs)
	assert.Nil(t, m.TeamBScore)
}

func TestMatch_LiveDropsScores(t *testing.T) {
	m := Match(decode(t, `{"status": "Live", "team_a_runs": 90, "team_a_wickets": 2}`))

	assert.Equal(t, match.StatusLive, m.Status)
	assert.Nil(t, m.TeamAScore)
}

func TestMatch_ScoreGroup(t *testing.T) {
	m := Match(decode(t, `{"team_a_score": {"runs": 150, "wickets": 4, "overs": 19.2}}`))

	assert.Equal(t, match.StatusCompleted, m.Status)
	require.NotNil(t, m.TeamAScore)
	assert.Equal(t, "150/4", m.TeamAScore.Display())
	assert.Equal(t, "19.2", m.TeamAScore.Overs)
}

func TestOvers_NoRounding(t *testing.T) {
	assert.Equal(t, "18.4", Overs(18.4))
	assert.Equal(t, "20", Overs(float64(20)))
	assert.Equal(t, "19.5", Overs(" 19.5 "))
	assert.Equal(t, "", Overs(nil))
}

func TestStanding_Qualified(t *testing.T) {
	third := Standing(decode(t, `{"position": 3, "team": [{"short_name": "WW"}], "points": 8, "net_run_rate": "+0.512", "recent_form": "W,L,W"}`))
	fifth := Standing(decode(t, `{"position": 5, "team": {"short_name": "LL"}}`))

	assert.True(t, third.Qualified)
	assert.False(t, fifth.Qualified)
	assert.Equal(t, 0.512, third.NetRunRate)
	assert.Equal(t, []string{"W", "L", "W"}, third.Form)
	assert.Equal(t, "WW", third.Team.ShortName)
}

func TestStanding_NonFinitePositionDefaults(t *testing.T) {
	row := Standing(decode(t, `{"position": "NaN", "points": "Inf", "team": {"short_name": "FC"}}`))

	assert.Equal(t, 0, row.Position)
	assert.Equal(t, 0, row.Points)
	assert.False(t, row.Qualified)
}

func TestStanding_FormVariants(t *testing.T) {
	packed := Standing(decode(t, `{"position": 1, "recent_form": "wlw"}`))
	list := Standing(decode(t, `{"position": 2, "form": ["W", "X", "l"]}`))

	assert.Equal(t, []string{"W", "L", "W"}, packed.Form)
	assert.Equal(t, []string{"W", "L"}, list.Form)
}

func TestTeam_LogoFallback(t *testing.T) {
	fc := Team(decode(t, `{"short_name": "FC", "team_name": "Flame Chargers", "primary_color": "#e87425"}`))
	assert.Equal(t, "/images/teams/fc-logo.png", fc.LogoURL)
	assert.Equal(t, "#e87425", fc.PrimaryColor)

	cms := Team(decode(t, `{"short_name": "FC", "team_logo": {"url": "https://images.contentstack.io/fc.png"}}`))
	assert.Equal(t, "https://images.contentstack.io/fc.png", cms.LogoURL)
	assert.Equal(t, "#e87425", cms.PrimaryColor)
	assert.Equal(t, "Flame Chargers", cms.Name)

	unknown := Team(decode(t, `{"short_name": "ZZ", "team_name": "Zebra XI"}`))
	assert.Equal(t, team.NeutralColor, unknown.PrimaryColor)
	assert.Equal(t, "", unknown.LogoURL)

	styled := Team(decode(t, `{"short_name": "ZZ", "team_name": "Zebra XI", "primary_color": "#112233"}`))
	assert.Equal(t, "#112233", styled.PrimaryColor)
}

func TestTeam_StatsFromGroup(t *testing.T) {
	tm := Team(decode(t, `{"title": "Thunder Titans", "stats": {"matches_played": 14, "wins": 9, "losses": 5, "titles": 2}}`))

	assert.Equal(t, "TT", tm.ShortName)
	assert.Equal(t, team.Stats{MatchesPlayed: 14, Wins: 9, Losses: 5, Titles: 2}, tm.Stats)
}

func TestVideo_Defaults(t *testing.T) {
	v := Video(decode(t, `{
		"uid": "vid1", "title": "Final highlights", "youtube_id": "abc123",
		"related_team": [{"short_name": "SS"}], "related_match": [{"uid": "m1"}],
		"publish_date": "2026-05-01", "view_count": "1200", "featured": true
	}`))

	assert.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", v.ThumbnailURL)
	assert.Equal(t, "SS", v.RelatedTeamCode)
	assert.Equal(t, "m1", v.RelatedMatchUID)
	assert.Equal(t, int64(1200), v.ViewCount)
	assert.Equal(t, "May 1, 2026", v.DateDisplay)
	assert.True(t, v.Featured)
}

func TestHeadline(t *testing.T) {
	a := Headline(decode(t, `{
		"title": "League announces schedule", "link": "https://news.example.com/a",
		"description": "Twelve rounds.", "pubDate": "2026-03-15 10:30:00",
		"source_id": "cricnews", "category": ["sports"], "creator": ["Staff"]
	}`))

	assert.Equal(t, "https://news.example.com/a", a.UID)
	assert.Equal(t, "Mar 15, 2026", a.DateDisplay)
	assert.Equal(t, "cricnews", a.Source)
	assert.Equal(t, "sports", a.Category)
	assert.Equal(t, "Staff", a.Author)
}

func TestDisplayDate(t *testing.T) {
	ts := time.Date(2026, time.January, 5, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 5, 2026", DisplayDate(&ts))
	assert.Equal(t, DateTBD, DisplayDate(nil))
	assert.Nil(t, ParseDate("sometime soon"))
}
